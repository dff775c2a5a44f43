package snapshot_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/mopos/pkg/snapshot"
)

type testState struct {
	Name  string `yaml:"name"`
	Total string `yaml:"total"`
	Count int64  `yaml:"count"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.yaml")
	saved := testState{Name: "till", Total: "6.80", Count: 3}

	// Parent directories are created on demand.
	require.NoError(t, snapshot.Save(path, saved))

	var loaded testState
	require.NoError(t, snapshot.Load(path, &loaded))
	assert.Equal(t, saved, loaded)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	require.NoError(t, snapshot.Save(path, testState{Name: "old", Count: 1}))
	require.NoError(t, snapshot.Save(path, testState{Name: "new", Count: 2}))

	var loaded testState
	require.NoError(t, snapshot.Load(path, &loaded))
	assert.Equal(t, "new", loaded.Name)
	assert.Equal(t, int64(2), loaded.Count)
}

func TestLoadMissingSnapshotIsNotExist(t *testing.T) {
	var loaded testState
	err := snapshot.Load(filepath.Join(t.TempDir(), "absent.yaml"), &loaded)

	// Callers rely on this sentinel to pick the first-run path.
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
