package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/facturier/internal/config"
	"github.com/andy/facturier/internal/crypto"
	"github.com/andy/facturier/internal/domain"
	"github.com/andy/facturier/internal/printer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(root, "facturier.db")
	cfg.Invoice.OutputDir = filepath.Join(root, "invoices")
	cfg.Log.Path = filepath.Join(root, "facturier.log")
	cfg.Log.Level = "debug"
	return cfg
}

func TestNewWithConfig_Ephemeral(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Language = "en"

	a, err := NewWithConfig(ctx, cfg, Options{Ephemeral: true})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	if a.DB != nil {
		t.Fatalf("ephemeral app must not open the database")
	}
	if a.Language != domain.LanguageEnglish {
		t.Fatalf("expected english, got %s", a.Language)
	}
	if _, ok := a.Printer.(*printer.FilePrinter); !ok {
		t.Fatalf("expected file printer, got %T", a.Printer)
	}

	f := a.NewForm(ctx, nil)
	f.SetField(ctx, domain.FieldSenderName, "Atelier")

	// A second form on the same app sees the saved sender
	if got := a.NewForm(ctx, nil).Value(domain.FieldSenderName); got != "Atelier" {
		t.Fatalf("expected restored sender, got %q", got)
	}

	if _, err := os.Stat(cfg.Log.Path); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestNewWithConfig_Database(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Invoice.PrintCommand = "lp"
	t.Setenv(crypto.EnvKey, "test-key")

	a, err := NewWithConfig(ctx, cfg, Options{})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	f := a.NewForm(ctx, nil)
	f.SetField(ctx, domain.FieldTPSCode, "TPS1")
	if _, ok := a.Printer.(*printer.CommandPrinter); !ok {
		t.Fatalf("expected command printer, got %T", a.Printer)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopen: the tax code survived
	a, err = NewWithConfig(ctx, cfg, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer a.Close()
	if got := a.NewForm(ctx, nil).Value(domain.FieldTPSCode); got != "TPS1" {
		t.Fatalf("expected TPS1 after reopen, got %q", got)
	}

	data, _ := os.ReadFile(cfg.Log.Path)
	if !strings.Contains(string(data), "started") {
		t.Fatalf("expected startup line in log, got %q", data)
	}
}

func TestOpenLogger_InvalidLevel(t *testing.T) {
	_, _, err := openLogger(config.LogConfig{
		Path:  filepath.Join(t.TempDir(), "x.log"),
		Level: "loud",
	})
	if err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

type fakeKeyring struct {
	key       string
	available bool
	stored    string
}

func (k *fakeKeyring) GetKey() (string, error) {
	if k.key == "" {
		return "", errors.New("no key")
	}
	return k.key, nil
}

func (k *fakeKeyring) SetKey(password string) error {
	k.stored = password
	return nil
}

func (k *fakeKeyring) DeleteKey() error  { return nil }
func (k *fakeKeyring) IsAvailable() bool { return k.available }

func TestDatabaseKey(t *testing.T) {
	tests := []struct {
		name       string
		keyring    *fakeKeyring
		want       string
		wantErr    error
		wantPrompt bool
	}{
		{name: "stored key", keyring: &fakeKeyring{key: "k1", available: true}, want: "k1"},
		{name: "first run", keyring: &fakeKeyring{available: true}, want: "typed", wantPrompt: true},
		{name: "no keyring", keyring: &fakeKeyring{}, wantErr: crypto.ErrNoKeyring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompted := false
			prompt := func() (string, error) {
				prompted = true
				return "typed", nil
			}

			got, err := databaseKey(tt.keyring, prompt)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if !strings.Contains(err.Error(), crypto.EnvKey) {
					t.Fatalf("error should tell which variable to export: %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected key %q, got %q", tt.want, got)
			}
			if prompted != tt.wantPrompt {
				t.Fatalf("prompted = %v, want %v", prompted, tt.wantPrompt)
			}
			if tt.wantPrompt && tt.keyring.stored != "typed" {
				t.Fatalf("typed password should be stored, got %q", tt.keyring.stored)
			}
		})
	}
}
