package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/andy/facturier/internal/config"
	"github.com/andy/facturier/internal/crypto"
	"github.com/andy/facturier/internal/db"
	"github.com/andy/facturier/internal/domain"
	"github.com/andy/facturier/internal/printer"
	"github.com/andy/facturier/internal/repository"
	"github.com/andy/facturier/internal/service"
	"golang.org/x/term"
)

// Options tune how the App is assembled
type Options struct {
	// Ephemeral keeps saved fields in memory only; the database is not opened
	Ephemeral bool
}

// App is the dependency injection container for all application components
type App struct {
	Config   *config.Config
	DB       *db.DB
	Logger   *slog.Logger
	Language domain.Language

	Store       repository.KeyValueStore
	Preferences *service.Preferences
	Printer     service.Printer

	logFile io.Closer
}

// New loads the default config and assembles the App
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg, opts)
}

// NewWithConfig assembles the App from a provided config:
// 1. Opening the log file
// 2. Getting the encryption key from the keyring
// 3. Opening the database and running migrations
// 4. Creating the preferences store and the printer
func NewWithConfig(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	a := &App{
		Config:   cfg,
		Language: domain.ParseLanguage(cfg.Language),
	}

	logger, logFile, err := openLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	a.Logger = logger
	a.logFile = logFile

	if opts.Ephemeral {
		a.Store = repository.NewMemoryStore(nil)
	} else {
		database, err := openDatabase(cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.DB = database
		a.Store = repository.NewKVRepo(database)
	}

	a.Preferences = service.NewPreferences(a.Store, logger)
	a.Printer = newPrinter(cfg.Invoice)

	logger.Info("started", "db", cfg.Database.Path, "ephemeral", opts.Ephemeral, "language", a.Language)
	return a, nil
}

// FormConfig returns the collaborators a form needs from the App
func (a *App) FormConfig(alerter service.Alerter) service.FormConfig {
	return service.FormConfig{
		Language:    a.Language,
		Preferences: a.Preferences,
		Printer:     a.Printer,
		Alerter:     alerter,
		Logger:      a.Logger,
	}
}

// NewForm opens a fresh draft with the saved fields restored
func (a *App) NewForm(ctx context.Context, alerter service.Alerter) *service.Form {
	return service.NewForm(ctx, a.FormConfig(alerter))
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var err error
	if a.DB != nil {
		err = a.DB.Close()
	}
	if a.logFile != nil {
		if cerr := a.logFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func newPrinter(cfg config.InvoiceConfig) service.Printer {
	if cfg.PrintCommand != "" {
		return printer.NewCommandPrinter(cfg.OutputDir, cfg.PrintCommand)
	}
	return printer.NewFilePrinter(cfg.OutputDir)
}

// openLogger writes text logs to the configured file. An empty path
// discards logs.
func openLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	if cfg.Path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}

	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), f, nil
}

func openDatabase(cfg *config.Config) (*db.DB, error) {
	password, err := databaseKey(crypto.NewKeyring(), promptForPassword)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return database, nil
}

// databaseKey returns the stored key. On first run it prompts for a new one,
// unless the keyring could not keep it anyway.
func databaseKey(keyring crypto.Keyring, prompt func() (string, error)) (string, error) {
	password, err := keyring.GetKey()
	if err == nil {
		return password, nil
	}

	if !keyring.IsAvailable() {
		return "", fmt.Errorf("%w: export %s=<password> to open or create the database",
			crypto.ErrNoKeyring, crypto.EnvKey)
	}

	// No key exists, prompt user to set one
	fmt.Println("Setting up database encryption for the first time...")
	password, err = prompt()
	if err != nil {
		return "", fmt.Errorf("failed to set password: %w", err)
	}

	if err := keyring.SetKey(password); err != nil {
		return "", fmt.Errorf("failed to store encryption key: %w", err)
	}
	return password, nil
}

// promptForPassword asks for a new database password on first run
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your saved sender, receiver and tax numbers are stored encrypted.")
	fmt.Println("The password is kept in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured")
	fmt.Println()

	return string(password), nil
}
