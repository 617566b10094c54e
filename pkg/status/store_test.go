package status

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "status.json"))
	require.NoError(t, err)
	return store
}

func TestGetReturnsDefaultWhenMissing(t *testing.T) {
	store := newTestStore(t)

	status := store.Get()
	assert.Equal(t, "offline", status.Status)
	assert.Equal(t, int64(0), status.Commands)
	assert.Nil(t, status.LastActive)
	assert.False(t, status.IsDisabled)
}

func TestMarkOnlineAndOffline(t *testing.T) {
	store := newTestStore(t)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return fixed })

	require.NoError(t, store.MarkOnline(7))

	status := store.Get()
	assert.Equal(t, "online", status.Status)
	assert.Equal(t, 7, status.Servers)
	require.NotNil(t, status.LastRestart)
	assert.Equal(t, fixed, status.LastRestart.UTC())

	require.NoError(t, store.MarkOffline())
	status = store.Get()
	assert.Equal(t, "offline", status.Status)
	// Going offline keeps the counters
	assert.Equal(t, 7, status.Servers)
}

func TestIncrementCommands(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.IncrementCommands())
	require.NoError(t, store.IncrementCommands())
	require.NoError(t, store.IncrementCommands())

	status := store.Get()
	assert.Equal(t, int64(3), status.Commands)
	assert.NotNil(t, status.LastActive)
}

func TestEnableDisable(t *testing.T) {
	store := newTestStore(t)

	assert.False(t, store.IsDisabled())
	require.NoError(t, store.Disable())
	assert.True(t, store.IsDisabled())
	require.NoError(t, store.Enable())
	assert.False(t, store.IsDisabled())
}

func TestStatePersistsAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")

	first, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.MarkOnline(3))
	require.NoError(t, first.IncrementCommands())

	second, err := NewStore(path)
	require.NoError(t, err)
	status := second.Get()
	assert.Equal(t, "online", status.Status)
	assert.Equal(t, int64(1), status.Commands)
	assert.Equal(t, 3, status.Servers)
}

func TestReset(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.MarkOnline(1))
	require.NoError(t, store.Reset())

	status := store.Get()
	assert.Equal(t, "offline", status.Status)
	assert.Equal(t, 0, status.Servers)

	// Resetting a missing file is not an error
	require.NoError(t, store.Reset())
}
