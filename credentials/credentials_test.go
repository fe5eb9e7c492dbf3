package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStoreAndLoadAPIKey(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, StoreAPIKey("sk-test-123"))

	key, err := LoadAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", key)
}

func TestStoreTrimsWhitespace(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, StoreAPIKey("  sk-test-456\n"))

	key, err := LoadAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-456", key)
}

func TestStoreEmptyKeyFails(t *testing.T) {
	keyring.MockInit()

	assert.Error(t, StoreAPIKey(""))
	assert.Error(t, StoreAPIKey("   "))
}

func TestLoadMissingKey(t *testing.T) {
	keyring.MockInit()

	_, err := LoadAPIKey()
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestClearAPIKey(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, StoreAPIKey("sk-test-789"))
	require.NoError(t, ClearAPIKey())

	_, err := LoadAPIKey()
	assert.ErrorIs(t, err, ErrNoCredentials)

	// Clearing again is a no-op.
	assert.NoError(t, ClearAPIKey())
}
