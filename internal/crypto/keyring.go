package crypto

import (
	"errors"
	"os"
)

// Keyring stores the database encryption key
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "facturier"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the platform keyring when set
	EnvKey = "FACTURIER_DB_KEY"
)

// ErrNoKeyring means no key is set and nothing can store a new one
var ErrNoKeyring = errors.New("no keyring available to store the database key")

// NewKeyring returns the environment keyring when EnvKey is set, otherwise
// the best implementation for the platform
func NewKeyring() Keyring {
	if os.Getenv(EnvKey) != "" {
		return envKeyring{}
	}
	return newPlatformKeyring()
}
