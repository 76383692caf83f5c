package knowledgehub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKeyValueStore runs the behaviour every KeyValueStore implementation
// must have against store. store must be empty.
func TestKeyValueStore(t *testing.T, store KeyValueStore) {
	// Missing key
	value, ok, err := store.Get("kp_token")
	require.NoError(t, err, "get on empty store")
	assert.False(t, ok, "key should not be set")
	assert.Equal(t, "", value)

	// Set and get
	require.NoError(t, store.Set("kp_token", "token"), "set token")
	require.NoError(t, store.Set("kp_user", `{"id":1}`), "set user")

	value, ok, err = store.Get("kp_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token", value)

	// Overwrite
	require.NoError(t, store.Set("kp_token", "other"))
	value, _, err = store.Get("kp_token")
	require.NoError(t, err)
	assert.Equal(t, "other", value)

	// Empty values are still set
	require.NoError(t, store.Set("empty", ""))
	_, ok, err = store.Get("empty")
	require.NoError(t, err)
	assert.True(t, ok, "empty value should be set")

	// Delete several keys, missing keys are ignored
	require.NoError(t, store.Delete("kp_token", "kp_user", "missing"))
	for _, key := range []string{"kp_token", "kp_user"} {
		_, ok, err := store.Get(key)
		require.NoError(t, err)
		assert.False(t, ok, "%s should be deleted", key)
	}

	_, ok, err = store.Get("empty")
	require.NoError(t, err)
	assert.True(t, ok, "other keys are kept")
}
