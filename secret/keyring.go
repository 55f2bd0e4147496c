// Package secret persists credential fields in the system keyring so they never land in the config file.
package secret

import (
	"errors"
	"fmt"

	"github.com/tmessages/buildvars/constant"
	"github.com/tmessages/buildvars/key"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no secret is stored under a key.
	ErrNotFound = errors.New("secret not found")

	// ErrNotSecret is returned for keys that are not credentials.
	ErrNotSecret = errors.New("not a secret key")
)

// Store reads and writes credentials by configuration key.
type Store interface {
	Get(k string) (string, error)
	Set(k, value string) error
	Delete(k string) error
}

// Keyring is a Store backed by the OS keyring. Each credential is an entry
// of the buildvars service whose user is the configuration key.
type Keyring struct {
	service string
}

// NewKeyring returns a keyring store for the buildvars service.
func NewKeyring() *Keyring {
	return &Keyring{service: constant.KeyringService}
}

func (k *Keyring) Get(name string) (string, error) {
	if err := check(name); err != nil {
		return "", err
	}

	v, err := keyring.Get(k.service, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return v, err
}

func (k *Keyring) Set(name, value string) error {
	if err := check(name); err != nil {
		return err
	}
	return keyring.Set(k.service, name, value)
}

func (k *Keyring) Delete(name string) error {
	if err := check(name); err != nil {
		return err
	}

	err := keyring.Delete(k.service, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return err
}

func check(name string) error {
	if !key.IsSecret(name) {
		return fmt.Errorf("%w: %s", ErrNotSecret, name)
	}
	return nil
}
