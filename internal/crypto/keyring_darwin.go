//go:build darwin

package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

type darwinKeyring struct{}

func newPlatformKeyring() Keyring {
	return darwinKeyring{}
}

// GetKey reads the database key from the macOS Keychain
func (darwinKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", fmt.Errorf("database key not in keychain: %w", err)
	case err != nil:
		return "", fmt.Errorf("read keychain: %w", err)
	case key == "":
		return "", errors.New("database key is empty")
	}
	return key, nil
}

// SetKey stores the database key in the macOS Keychain
func (darwinKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("write keychain: %w", err)
	}
	return nil
}

// DeleteKey removes the database key from the macOS Keychain
func (darwinKeyring) DeleteKey() error {
	if err := keyring.Delete(ServiceName, KeyName); err != nil {
		return fmt.Errorf("delete keychain entry: %w", err)
	}
	return nil
}

// IsAvailable probes the Keychain with a throwaway entry
func (darwinKeyring) IsAvailable() bool {
	probe := "__facturier_probe__"
	if err := keyring.Set(ServiceName, probe, "probe"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, probe)
	return true
}
