package tracker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStateMissingFile(t *testing.T) {
	st, err := LoadState(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestStateSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)

	st := &TrackingState{TaskName: "Writing", StartTime: start}
	require.NoError(t, st.Save(path))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Writing", loaded.TaskName)
	assert.True(t, loaded.StartTime.Equal(start))
}

func TestClearState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st := &TrackingState{TaskName: "Writing", StartTime: time.Now()}
	require.NoError(t, st.Save(path))

	require.NoError(t, ClearState(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-idle state is fine
	require.NoError(t, ClearState(path))
}

func TestLoadStateRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadState(path)
	assert.Error(t, err)
}

func TestLoadStateRejectsIncompleteState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"task_name":""}`), 0644))

	_, err := LoadState(path)
	assert.Error(t, err)
}
