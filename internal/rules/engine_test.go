package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"rulesync/internal/config"
	"rulesync/internal/rules"
	"rulesync/pkg/testutils"
	"rulesync/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncCopiesMatchingFiles(t *testing.T) {
	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "rules")

	testutils.CreateRuleFiles(t, source, map[string]string{
		"g-a.mdc":   "rule a",
		"g-b.mdc":   "rule b",
		"other.mdc": "not a rule",
	})

	engine := rules.New()
	res := engine.Sync(source, target)

	require.True(t, res.Success)
	assert.Empty(t, res.Errors)

	testutils.AssertFileContent(t, filepath.Join(target, "g-a.mdc"), "rule a")
	testutils.AssertFileContent(t, filepath.Join(target, "g-b.mdc"), "rule b")
	assert.NoFileExists(t, filepath.Join(target, "other.mdc"))
}

func TestSyncMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	target := filepath.Join(t.TempDir(), "rules")

	engine := rules.New()
	res := engine.Sync(missing, target)

	require.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, types.OperationError, res.Errors[0].Type)
	assert.Equal(t, "Source directory does not exist: "+missing, res.Errors[0].Message)

	// No target-side mutation on a fatal source error
	assert.NoDirExists(t, target)
}

func TestSyncEmptySource(t *testing.T) {
	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "rules")

	engine := rules.New()
	res := engine.Sync(source, target)

	// Vacuous success: the target is created but stays empty
	require.True(t, res.Success)
	require.DirExists(t, target)

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSyncNoMatchingFiles(t *testing.T) {
	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "rules")

	testutils.CreateRuleFiles(t, source, map[string]string{
		"local.mdc":  "x",
		"notes.txt":  "y",
		"gadget.mdc": "name does not start with the g- prefix",
	})

	engine := rules.New()
	res := engine.Sync(source, target)

	require.True(t, res.Success)
	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSyncOverwritesExistingTarget(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()

	testutils.CreateRuleFiles(t, source, map[string]string{"g-a.mdc": "new content"})
	testutils.CreateRuleFiles(t, target, map[string]string{"g-a.mdc": "stale content"})

	engine := rules.New()
	res := engine.Sync(source, target)

	require.True(t, res.Success)
	testutils.AssertFileContent(t, filepath.Join(target, "g-a.mdc"), "new content")
}

func TestSyncLeavesUnrelatedTargetFiles(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()

	testutils.CreateRuleFiles(t, source, map[string]string{"g-a.mdc": "rule a"})
	testutils.CreateRuleFiles(t, target, map[string]string{"pre-existing.txt": "keep me"})

	engine := rules.New()
	res := engine.Sync(source, target)

	require.True(t, res.Success)
	testutils.AssertFileContent(t, filepath.Join(target, "pre-existing.txt"), "keep me")
}

func TestSyncIdempotent(t *testing.T) {
	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "rules")

	testutils.CreateRuleFiles(t, source, map[string]string{"g-a.mdc": "rule a"})

	engine := rules.New()
	require.True(t, engine.Sync(source, target).Success)
	require.True(t, engine.Sync(source, target).Success)

	testutils.AssertFileContent(t, filepath.Join(target, "g-a.mdc"), "rule a")
}

func TestSyncSkipsDirectories(t *testing.T) {
	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "rules")

	// A directory with a matching name is not a rule file
	require.NoError(t, os.MkdirAll(filepath.Join(source, "g-subdir"), 0755))
	testutils.CreateRuleFiles(t, source, map[string]string{"g-a.mdc": "rule a"})

	engine := rules.New()
	res := engine.Sync(source, target)

	require.True(t, res.Success)
	testutils.AssertFileContent(t, filepath.Join(target, "g-a.mdc"), "rule a")
	assert.NoDirExists(t, filepath.Join(target, "g-subdir"))
}

func TestSyncPartialFailure(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()

	testutils.CreateRuleFiles(t, source, map[string]string{
		"g-a.mdc": "rule a",
		"g-b.mdc": "rule b",
		"g-c.mdc": "rule c",
	})

	// A directory squatting on a target file name makes that one copy
	// fail while its siblings still go through.
	require.NoError(t, os.MkdirAll(filepath.Join(target, "g-b.mdc"), 0755))

	engine := rules.New()
	res := engine.Sync(source, target)

	require.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, types.OperationError, res.Errors[0].Type)
	assert.Contains(t, res.Errors[0].Message, "Failed to copy g-b.mdc:")

	// The copyable siblings made it
	testutils.AssertFileContent(t, filepath.Join(target, "g-a.mdc"), "rule a")
	testutils.AssertFileContent(t, filepath.Join(target, "g-c.mdc"), "rule c")
}

func TestSyncMultipleFailuresInNameOrder(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()

	testutils.CreateRuleFiles(t, source, map[string]string{
		"g-a.mdc": "rule a",
		"g-c.mdc": "rule c",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(target, "g-a.mdc"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(target, "g-c.mdc"), 0755))

	engine := rules.New()
	res := engine.Sync(source, target)

	require.False(t, res.Success)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0].Message, "g-a.mdc")
	assert.Contains(t, res.Errors[1].Message, "g-c.mdc")
}

func TestSyncNeverTouchesSource(t *testing.T) {
	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "rules")

	testutils.CreateRuleFiles(t, source, map[string]string{
		"g-a.mdc":   "rule a",
		"other.mdc": "unrelated",
	})

	engine := rules.New()
	require.True(t, engine.Sync(source, target).Success)

	testutils.AssertFileContent(t, filepath.Join(source, "g-a.mdc"), "rule a")
	testutils.AssertFileContent(t, filepath.Join(source, "other.mdc"), "unrelated")
}

func TestNewWithConfigPatterns(t *testing.T) {
	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "rules")

	testutils.CreateRuleFiles(t, source, map[string]string{
		"g-a.mdc":      "rule a",
		"shared-b.mdc": "rule b",
		"local.mdc":    "not shared",
	})

	cfg := config.New()
	cfg.GlobalRulesSourceDir = source
	cfg.RulePatterns = []string{"g-*", "shared-*"}

	engine, err := rules.NewWithConfig(cfg)
	require.NoError(t, err)

	res := engine.Sync(source, target)
	require.True(t, res.Success)

	assert.FileExists(t, filepath.Join(target, "g-a.mdc"))
	assert.FileExists(t, filepath.Join(target, "shared-b.mdc"))
	assert.NoFileExists(t, filepath.Join(target, "local.mdc"))
}

func TestNewWithConfigBadPattern(t *testing.T) {
	cfg := config.New()
	cfg.GlobalRulesSourceDir = t.TempDir()
	cfg.RulePatterns = []string{"g-["}

	_, err := rules.NewWithConfig(cfg)
	assert.Error(t, err)
}
