package config

import (
	"os"
	"path/filepath"
	"strings"

	"rulesync/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the configuration file expected next to
// the running executable.
const ConfigFileName = "rulesync.yaml"

// EnvConfigPath names the environment variable that overrides the
// configuration file location.
const EnvConfigPath = "RULESYNC_CONFIG"

// DefaultRulePattern matches global rule files when no patterns are
// configured. Rule files are identified by the literal g- name prefix.
const DefaultRulePattern = "g-*"

// Config is the persisted application configuration.
type Config struct {
	// GlobalRulesSourceDir is the directory holding the shared global
	// rule files. Required; must name an existing directory.
	GlobalRulesSourceDir string `yaml:"globalRulesSourceDir"`

	// RulePatterns are glob patterns selecting which file names count as
	// rule files. Defaults to the g- prefix.
	RulePatterns []string `yaml:"rulePatterns,omitempty"`

	Server struct {
		// Listen is the address the serve command binds to.
		Listen string `yaml:"listen"`
	} `yaml:"server"`

	Watch struct {
		// DebounceMs batches rapid bursts of file events into one resync.
		DebounceMs int `yaml:"debounceMs"`
	} `yaml:"watch"`
}

// DefaultPath returns the configuration file location: the
// RULESYNC_CONFIG environment variable if set, otherwise rulesync.yaml
// next to the running executable.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", errors.NewConfigError("cannot locate executable", "", errors.ConfigNotFound, err)
	}
	return filepath.Join(filepath.Dir(exe), ConfigFileName), nil
}

// Load reads and validates the configuration from the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads and validates the configuration from a specific file.
// Every failure mode, including a missing file, is a configuration error;
// unlike most tools there is no usable default, because the global rules
// directory cannot be guessed.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("config file not found", path, errors.ConfigNotFound, nil)
		}
		return nil, errors.NewConfigError("cannot read config file", path, errors.ConfigNotFound, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigError("cannot parse config file", path, errors.ConfigMalformed, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in unset optional fields.
func (c *Config) applyDefaults() {
	if len(c.RulePatterns) == 0 {
		c.RulePatterns = []string{DefaultRulePattern}
	}
	if c.Server.Listen == "" {
		c.Server.Listen = "127.0.0.1:7437"
	}
	if c.Watch.DebounceMs <= 0 {
		c.Watch.DebounceMs = 500
	}
}

// Validate checks that the configuration is usable. The source directory
// field must be non-blank after trimming and must name an existing,
// accessible directory; rule patterns must compile.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.ConfigMalformed, nil)
	}

	c.GlobalRulesSourceDir = strings.TrimSpace(c.GlobalRulesSourceDir)
	if c.GlobalRulesSourceDir == "" {
		return errors.NewConfigError("missing required field", "globalRulesSourceDir", errors.ConfigMissingField, nil)
	}

	info, err := os.Stat(c.GlobalRulesSourceDir)
	if err != nil {
		return errors.NewConfigError("global rules source directory does not exist", c.GlobalRulesSourceDir, errors.ConfigBadSourceDir, err)
	}
	if !info.IsDir() {
		return errors.NewConfigError("global rules source path is not a directory", c.GlobalRulesSourceDir, errors.ConfigBadSourceDir, nil)
	}

	for _, p := range c.RulePatterns {
		if _, err := glob.Compile(p); err != nil {
			return errors.NewConfigError("invalid rule pattern", p, errors.ConfigMalformed, err)
		}
	}

	return nil
}

// Save writes the configuration to the given path, creating parent
// directories if they don't exist.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create config directory %s", dir)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	return nil
}

// New creates a configuration with defaults applied and no source
// directory set. Callers must fill GlobalRulesSourceDir before Validate
// will pass.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
