package crypto

import (
	"errors"
	"fmt"
	"os"
)

// envKeyring reads the key from EnvKey; it cannot persist anything
type envKeyring struct{}

func (envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", EnvKey)
	}
	return key, nil
}

func (envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return fmt.Errorf("no keyring on this platform: export %s to reuse this password", EnvKey)
}

func (envKeyring) DeleteKey() error {
	return fmt.Errorf("no keyring on this platform: unset %s manually", EnvKey)
}

func (envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
