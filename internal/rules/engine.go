// Package rules implements the directory synchronizer: it copies rule
// files matching the configured name patterns from a source directory
// into a target directory, collecting per-file failures without aborting
// the batch.
package rules

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rulesync/internal/config"
	"rulesync/internal/errors"
	"rulesync/internal/log"
	"rulesync/pkg/types"

	"github.com/gobwas/glob"
)

// Engine performs prefix-filtered directory synchronization
type Engine struct {
	patterns []glob.Glob
}

// New creates an Engine matching the default g- rule file prefix
func New() *Engine {
	return &Engine{
		patterns: []glob.Glob{glob.MustCompile(config.DefaultRulePattern)},
	}
}

// NewWithConfig creates an Engine using the configured rule patterns
func NewWithConfig(cfg *config.Config) (*Engine, error) {
	patterns := make([]glob.Glob, 0, len(cfg.RulePatterns))
	for _, p := range cfg.RulePatterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewConfigError("invalid rule pattern", p, errors.ConfigMalformed, err)
		}
		patterns = append(patterns, g)
	}
	return &Engine{patterns: patterns}, nil
}

// matches reports whether a file name counts as a rule file
func (e *Engine) matches(name string) bool {
	for _, g := range e.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Sync copies every matching regular file from sourceDir into targetDir,
// overwriting files of the same name. The source side is never mutated
// and unrelated files already in the target are left alone.
//
// A missing source directory is fatal and produces a single operation
// error with no partial work. Individual file failures are collected and
// do not stop the remaining files; the result carries them all, in name
// order. Zero matching files is a success.
func (e *Engine) Sync(sourceDir, targetDir string) *types.SyncResult {
	if _, err := os.Stat(sourceDir); err != nil {
		return types.Failure(types.SyncError{
			Type:    types.OperationError,
			Message: fmt.Sprintf("Source directory does not exist: %s", sourceDir),
		})
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return types.Failure(errors.Normalize(
			errors.NewOperationError("failed to create target directory", targetDir, errors.TargetCreateFailed, err)))
	}

	// os.ReadDir returns entries sorted by name, which keeps multi-error
	// output deterministic.
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return types.Failure(errors.Normalize(
			errors.NewOperationError("failed to list source directory", sourceDir, errors.ListFailed, err)))
	}

	var syncErrs []types.SyncError
	copied := 0
	for _, entry := range entries {
		name := entry.Name()
		if !e.matches(name) {
			continue
		}

		ok, err := e.copyRuleFile(filepath.Join(sourceDir, name), filepath.Join(targetDir, name))
		if err != nil {
			syncErrs = append(syncErrs, types.SyncError{
				Type:    types.OperationError,
				Message: fmt.Sprintf("Failed to copy %s: %v", name, err),
			})
			continue
		}
		if ok {
			copied++
			log.Debug("Copied %s -> %s", filepath.Join(sourceDir, name), targetDir)
		}
	}

	if len(syncErrs) > 0 {
		log.LogWithFields(log.F("source", sourceDir), log.F("failed", len(syncErrs))).Warn("Synchronization finished with errors")
		return types.Failure(syncErrs...)
	}

	log.LogWithFields(log.F("source", sourceDir), log.F("target", targetDir), log.F("copied", copied)).Info("Synchronization complete")
	return types.Success()
}

// copyRuleFile copies src to dest, overwriting dest if present. Entries
// that are not regular files at stat time are skipped without error; the
// returned bool reports whether a copy happened.
func (e *Engine) copyRuleFile(src, dest string) (bool, error) {
	info, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	if !info.Mode().IsRegular() {
		log.Debug("Skipping non-regular entry %s", src)
		return false, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return false, err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return false, err
	}
	if err := out.Close(); err != nil {
		return false, err
	}
	return true, nil
}
