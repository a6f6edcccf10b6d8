package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rulesync/internal/config"
	"rulesync/internal/service"
	"rulesync/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDeliversEvents(t *testing.T) {
	dir := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.AddDirectory(dir))
	require.NoError(t, w.Start())

	// Give the event loop a moment to come up before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "g-new.mdc"), []byte("x"), 0644))

	select {
	case mod := <-w.FileChannel():
		assert.Equal(t, filepath.Join(dir, "g-new.mdc"), mod.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for file event")
	}
}

func TestAddDirectoryRejectsFiles(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "a-file")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))

	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.AddDirectory(filePath))
	assert.Error(t, w.AddDirectory(filepath.Join(dir, "missing")))
}

func TestWatcherStartTwice(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Start())
	assert.Error(t, w.Start())
}

func TestResyncerCopiesOnChange(t *testing.T) {
	globalDir := t.TempDir()
	projectDir := t.TempDir()

	configPath := testutils.WriteConfigFile(t, globalDir)
	svc := service.NewWithConfigPath(configPath)

	cfg, err := config.LoadFile(configPath)
	require.NoError(t, err)
	cfg.Watch.DebounceMs = 50

	resyncer, err := NewResyncer(svc, cfg, projectDir)
	require.NoError(t, err)

	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- resyncer.Run(stop) }()
	defer func() {
		close(stop)
		require.NoError(t, <-done)
	}()

	// The initial load runs against an empty global directory
	rulesDir := filepath.Join(projectDir, ".cursor", "rules")
	require.Eventually(t, func() bool {
		_, err := os.Stat(rulesDir)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	// A new rule file in the global directory shows up in the project
	testutils.CreateRuleFiles(t, globalDir, map[string]string{"g-live.mdc": "fresh"})
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(rulesDir, "g-live.mdc"))
		return err == nil && string(data) == "fresh"
	}, 5*time.Second, 50*time.Millisecond)
}
