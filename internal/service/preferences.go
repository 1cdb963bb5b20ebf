package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/andy/facturier/internal/domain"
	"github.com/andy/facturier/internal/repository"
)

// Storage keys of the saved form fields
const (
	KeySender         = "invoice_sender"
	KeyReceiver       = "invoice_receiver"
	KeyTPSCode        = "invoice_tps_code"
	KeyTVQCode        = "invoice_tvq_code"
	KeyStorageVersion = "invoice_storage_version"

	// StorageVersion is the layout written by this build
	StorageVersion = 1
)

// KeyPrefix is shared by every key the preferences own
const KeyPrefix = "invoice_"

// ErrNewerLayout is returned by saves while the store holds fields written
// by a newer version. Clear lifts it.
var ErrNewerLayout = errors.New("saved fields were written by a newer version")

var errMalformedVersion = errors.New("malformed storage version")

// Preferences saves and restores the reusable parts of a draft: sender,
// receiver and both tax codes. Values are JSON.
type Preferences struct {
	store  repository.KeyValueStore
	logger *slog.Logger

	versionWritten bool
	readOnly       bool
}

// NewPreferences wraps a key/value store
func NewPreferences(store repository.KeyValueStore, logger *slog.Logger) *Preferences {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Preferences{store: store, logger: logger}
}

// Restore merges saved values into the draft. Missing, unreadable or
// malformed entries leave the draft's defaults in place and are logged.
func (p *Preferences) Restore(ctx context.Context, d *domain.Draft) {
	if !p.compatible(ctx) {
		return
	}

	p.restoreParty(ctx, KeySender, &d.Sender)
	p.restoreParty(ctx, KeyReceiver, &d.Receiver)
	p.restoreString(ctx, KeyTPSCode, &d.TPSCode)
	p.restoreString(ctx, KeyTVQCode, &d.TVQCode)
}

// compatible reports whether the stored layout can be read by this build
func (p *Preferences) compatible(ctx context.Context) bool {
	version, err := p.storedVersion(ctx)
	if err != nil {
		p.logger.Warn("read storage version, ignoring saved fields", "err", err)
		return false
	}
	if version > StorageVersion {
		p.readOnly = true
		p.logger.Warn("saved fields written by a newer version, ignoring",
			"stored", version, "supported", StorageVersion)
		return false
	}
	p.versionWritten = version == StorageVersion
	return true
}

// storedVersion returns the layout version in the store, 0 when absent
func (p *Preferences) storedVersion(ctx context.Context) (int, error) {
	raw, ok, err := p.store.Get(ctx, KeyStorageVersion)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	version, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errMalformedVersion, raw)
	}
	return version, nil
}

// ensureVersion stamps the store with this build's layout before the first
// write. A store holding a newer layout is never written to.
func (p *Preferences) ensureVersion(ctx context.Context) error {
	if p.versionWritten {
		return nil
	}
	if p.readOnly {
		return ErrNewerLayout
	}

	version, err := p.storedVersion(ctx)
	if err != nil && !errors.Is(err, errMalformedVersion) {
		return fmt.Errorf("read storage version: %w", err)
	}
	if version > StorageVersion {
		p.readOnly = true
		return ErrNewerLayout
	}
	if version != StorageVersion {
		if err := p.store.Set(ctx, KeyStorageVersion, strconv.Itoa(StorageVersion)); err != nil {
			return fmt.Errorf("write storage version: %w", err)
		}
	}
	p.versionWritten = true
	return nil
}

func (p *Preferences) restoreParty(ctx context.Context, key string, dst *domain.Party) {
	raw, ok, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.Warn("read saved party", "key", key, "err", err)
		return
	}
	if !ok {
		return
	}

	merged := *dst
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		p.logger.Warn("malformed saved party, using defaults", "key", key, "err", err)
		return
	}
	*dst = merged
}

func (p *Preferences) restoreString(ctx context.Context, key string, dst *string) {
	raw, ok, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.Warn("read saved value", "key", key, "err", err)
		return
	}
	if !ok {
		return
	}

	var v string
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		p.logger.Warn("malformed saved value, using default", "key", key, "err", err)
		return
	}
	*dst = v
}

// SaveSender overwrites the saved sender
func (p *Preferences) SaveSender(ctx context.Context, party domain.Party) error {
	return p.put(ctx, KeySender, party)
}

// SaveReceiver overwrites the saved receiver
func (p *Preferences) SaveReceiver(ctx context.Context, party domain.Party) error {
	return p.put(ctx, KeyReceiver, party)
}

// SaveTaxCode overwrites a saved tax code. An empty code is never written,
// so clearing the field keeps the previously saved value.
func (p *Preferences) SaveTaxCode(ctx context.Context, field domain.Field, value string) error {
	if value == "" {
		return nil
	}
	switch field {
	case domain.FieldTPSCode:
		return p.put(ctx, KeyTPSCode, value)
	case domain.FieldTVQCode:
		return p.put(ctx, KeyTVQCode, value)
	default:
		return fmt.Errorf("%s is not a tax code", field)
	}
}

// Clear removes every saved field
func (p *Preferences) Clear(ctx context.Context) error {
	keys, err := p.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := p.store.Delete(ctx, k); err != nil {
			return err
		}
	}
	p.versionWritten = false
	p.readOnly = false
	return nil
}

func (p *Preferences) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := p.ensureVersion(ctx); err != nil {
		return err
	}

	if err := p.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
