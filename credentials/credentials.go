// Package credentials provides secure storage for the OpenAI API key.
//
// The key is stored in the system keyring:
//   - macOS: Keychain
//   - Windows: Credential Manager
//   - Linux: Secret Service (libsecret)
//
// The OPENAI_API_KEY environment variable always takes precedence over the
// keyring; the keyring is the fallback for interactive use.
package credentials

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// Keyring identifiers.
const (
	ServiceName = "minuted"
	KeyUser     = "openai-api-key"
)

// ErrNoCredentials is returned when no API key is stored.
var ErrNoCredentials = errors.New("no credentials stored")

// StoreAPIKey saves the API key in the system keyring.
func StoreAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("api key must not be empty")
	}
	if err := keyring.Set(ServiceName, KeyUser, key); err != nil {
		return fmt.Errorf("store api key in keyring: %w", err)
	}
	return nil
}

// LoadAPIKey reads the API key from the system keyring.
func LoadAPIKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoCredentials
		}
		return "", fmt.Errorf("read api key from keyring: %w", err)
	}
	return key, nil
}

// ClearAPIKey removes the stored API key. Clearing an absent key is not an error.
func ClearAPIKey() error {
	if err := keyring.Delete(ServiceName, KeyUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete api key from keyring: %w", err)
	}
	return nil
}
