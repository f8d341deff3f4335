package engine

import (
	"fmt"

	"github.com/tartampluch/go-vcfedit/internal/config"
	"github.com/zalando/go-keyring"
)

// Credentials stores the basic auth password of remote imports, keyed by user.
type Credentials interface {
	Password(user string) (string, error)
	SetPassword(user, pass string) error
}

// KeyringCredentials keeps passwords in the OS keychain.
type KeyringCredentials struct {
	Service string
}

// NewKeyringCredentials uses the application keyring service name.
func NewKeyringCredentials() *KeyringCredentials {
	return &KeyringCredentials{Service: config.KeyringService}
}

// Password returns the stored password of user.
func (k *KeyringCredentials) Password(user string) (string, error) {
	pass, err := keyring.Get(k.Service, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCredentialRead, err)
	}
	return pass, nil
}

// SetPassword stores pass for user, replacing any previous value.
func (k *KeyringCredentials) SetPassword(user, pass string) error {
	if err := keyring.Set(k.Service, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCredentialStore, err)
	}
	return nil
}
