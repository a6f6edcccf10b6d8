package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rulesync/internal/config"
)

// CreateRuleFiles creates files with specific content in dir
func CreateRuleFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
}

// AssertFileContent fails the test unless path holds exactly content
func AssertFileContent(t *testing.T, path, content string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "expected file %s to exist", path)
	require.Equal(t, content, string(data), "unexpected content in %s", path)
}

// WriteConfigFile writes a minimal valid config pointing at sourceDir and
// returns its path
func WriteConfigFile(t *testing.T, sourceDir string) string {
	t.Helper()
	cfg := config.New()
	cfg.GlobalRulesSourceDir = sourceDir
	path := filepath.Join(t.TempDir(), "rulesync.yaml")
	require.NoError(t, config.Save(cfg, path))
	return path
}
