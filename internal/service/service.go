// Package service exposes the two directional synchronization operations,
// resolving which directory plays source and which plays target and
// short-circuiting on configuration failures.
package service

import (
	"path/filepath"
	"strings"

	"rulesync/internal/config"
	"rulesync/internal/errors"
	"rulesync/internal/log"
	"rulesync/internal/rules"
	"rulesync/pkg/types"
)

// RulesSubdir is where rule files live inside a project.
const RulesSubdir = ".cursor/rules"

// Service implements the loadGlobalRules and saveGlobalRules operations.
// Configuration is loaded fresh on every call, so edits to the config
// file take effect without a restart.
type Service struct {
	configPath string
}

// New creates a Service reading configuration from the default location
func New() *Service {
	return &Service{}
}

// NewWithConfigPath creates a Service reading configuration from an
// explicit file
func NewWithConfigPath(path string) *Service {
	return &Service{configPath: path}
}

// LoadGlobalRules copies rule files from the configured global directory
// into {path}/.cursor/rules.
func (s *Service) LoadGlobalRules(req types.SyncRequest) *types.SyncResult {
	cfg, engine, res := s.prepare(req)
	if res != nil {
		return res
	}
	log.Debug("Loading global rules into %s", req.Path)
	return engine.Sync(cfg.GlobalRulesSourceDir, projectRulesDir(req.Path))
}

// SaveGlobalRules copies rule files from {path}/.cursor/rules back into
// the configured global directory.
func (s *Service) SaveGlobalRules(req types.SyncRequest) *types.SyncResult {
	cfg, engine, res := s.prepare(req)
	if res != nil {
		return res
	}
	log.Debug("Saving global rules from %s", req.Path)
	return engine.Sync(projectRulesDir(req.Path), cfg.GlobalRulesSourceDir)
}

// prepare validates the request and loads configuration. A non-nil result
// means the operation already failed and no filesystem work was done.
func (s *Service) prepare(req types.SyncRequest) (*config.Config, *rules.Engine, *types.SyncResult) {
	if strings.TrimSpace(req.Path) == "" {
		return nil, nil, types.Failure(errors.Normalize(
			errors.NewOperationError("project path must not be empty", "", errors.InvalidRequest, nil)))
	}

	var cfg *config.Config
	var err error
	if s.configPath != "" {
		cfg, err = config.LoadFile(s.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.LogWithError(err).Warn("Configuration load failed")
		return nil, nil, types.Failure(errors.Normalize(err))
	}

	engine, err := rules.NewWithConfig(cfg)
	if err != nil {
		return nil, nil, types.Failure(errors.Normalize(err))
	}
	return cfg, engine, nil
}

func projectRulesDir(projectPath string) string {
	return filepath.Join(projectPath, filepath.FromSlash(RulesSubdir))
}
