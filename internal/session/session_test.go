package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCurrentIsNilBeforeActivation(t *testing.T) {
	store := openTestStore(t)

	state, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestActivateAndCurrent(t *testing.T) {
	store := openTestStore(t)

	activated, err := store.Activate("widgets", "/repos/widgets")
	require.NoError(t, err)
	assert.NotEmpty(t, activated.ID)

	state, err := store.Current()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "widgets", state.ProjectName)
	assert.Equal(t, "/repos/widgets", state.ProjectDir)
	assert.Equal(t, activated.ID, state.ID)
}

func TestActivateReplacesPreviousSession(t *testing.T) {
	store := openTestStore(t)

	first, err := store.Activate("widgets", "/repos/widgets")
	require.NoError(t, err)

	second, err := store.Activate("gadgets", "/repos/gadgets")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	state, err := store.Current()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "gadgets", state.ProjectName)
}

func TestClear(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Activate("widgets", "/repos/widgets")
	require.NoError(t, err)
	require.NoError(t, store.Clear())

	state, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, state)
}
