// Package config loads and validates the emimeter configuration file.
//
// Configuration lives at ~/.emimeter/config.yaml (EMIMETER_HOME
// overrides the directory). Every section is optional; missing sections
// keep their built-in defaults. Top-level sections present in the file
// replace the defaults wholesale via ShallowMergeYAML.
package config

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// CurrentSchemaVersion is written into new config files by `emimeter
// config init`.
const CurrentSchemaVersion = "1.0.0"

// supportedSchemaRange is the semver range of config schema versions
// this build can read. Major bumps are breaking.
const supportedSchemaRange = "^1"

// Output format names accepted by OutputConfig.DefaultFormat.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Limits applied by Validate. Sessions and TTLs outside these ranges
// point at configuration mistakes rather than real deployments.
const (
	maxSessionTTLMinutes = 7 * 24 * 60
	maxSessions          = 100000
	defaultPrecision     = 2
	maxPrecision         = 6
)

// Sentinel errors for config validation, comparable with errors.Is().
var (
	// ErrInvalidVersion indicates a version field that does not parse
	// as semver.
	ErrInvalidVersion = constError("invalid config schema version")

	// ErrUnsupportedVersion indicates a config written by an
	// incompatible emimeter release.
	ErrUnsupportedVersion = constError("unsupported config schema version")

	// ErrInvalidFormat indicates an unknown output format name.
	ErrInvalidFormat = constError("invalid output format")

	// ErrInvalidServer indicates a server section that fails sanity checks.
	ErrInvalidServer = constError("invalid server configuration")
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Config is the root of the emimeter configuration file.
type Config struct {
	// Version is the config schema version, checked against
	// supportedSchemaRange at load time.
	Version string        `yaml:"version" json:"version"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Factors FactorsConfig `yaml:"factors" json:"factors"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// OutputConfig controls how reports are rendered by default.
type OutputConfig struct {
	// DefaultFormat is "table" or "json".
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	// Precision is the number of decimal places for tons figures.
	Precision int `yaml:"precision" json:"precision"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// ServerConfig controls the HTTP API started by `emimeter serve`.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr" json:"addr"`
	// SessionTTLMinutes is how long an idle session survives before
	// the manager evicts it.
	SessionTTLMinutes int `yaml:"session_ttl_minutes" json:"session_ttl_minutes"`
	// MaxSessions caps concurrent sessions; the oldest idle session is
	// evicted when the cap is hit.
	MaxSessions int `yaml:"max_sessions" json:"max_sessions"`
}

// DefaultConfig returns the built-in configuration used when no config
// file exists.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentSchemaVersion,
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     defaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Factors: FactorsConfig{},
		Server: ServerConfig{
			Addr:              ":8080",
			SessionTTLMinutes: 60,
			MaxSessions:       1000,
		},
	}
}

// New builds the effective configuration: defaults, overlaid by the
// global config file when one exists. A config file that cannot be
// parsed or fails validation is reported through the package logger and
// ignored, so a broken file never takes the CLI down.
func New() *Config {
	cfg := DefaultConfig()

	path, err := GetConfigFilePath()
	if err != nil {
		Logger.Warn().Err(err).Msg("could not resolve config path, using defaults")
		return cfg
	}
	if _, statErr := os.Stat(path); statErr != nil {
		// No config file is the common case.
		return cfg
	}

	merged := DefaultConfig()
	if mergeErr := ShallowMergeYAML(merged, path); mergeErr != nil {
		Logger.Warn().Err(mergeErr).Str("path", path).Msg("failed to load config file, using defaults")
		return cfg
	}
	if valErr := merged.Validate(); valErr != nil {
		Logger.Warn().Err(valErr).Str("path", path).Msg("config file failed validation, using defaults")
		return cfg
	}

	return merged
}

// Load reads and validates a specific config file. Unlike New it
// propagates every failure so `emimeter config validate` can report
// them.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the whole config: schema version range, output
// format, factor overrides, and server limits.
func (c *Config) Validate() error {
	if err := c.validateVersion(); err != nil {
		return err
	}

	if c.Output.DefaultFormat != FormatTable && c.Output.DefaultFormat != FormatJSON {
		return fmt.Errorf("%w: %q (want %q or %q)",
			ErrInvalidFormat, c.Output.DefaultFormat, FormatTable, FormatJSON)
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("%w: precision %d out of range [0,%d]",
			ErrInvalidFormat, c.Output.Precision, maxPrecision)
	}

	if err := c.Factors.Validate(); err != nil {
		return err
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("%w: empty addr", ErrInvalidServer)
	}
	if c.Server.SessionTTLMinutes <= 0 || c.Server.SessionTTLMinutes > maxSessionTTLMinutes {
		return fmt.Errorf("%w: session_ttl_minutes %d out of range (0,%d]",
			ErrInvalidServer, c.Server.SessionTTLMinutes, maxSessionTTLMinutes)
	}
	if c.Server.MaxSessions <= 0 || c.Server.MaxSessions > maxSessions {
		return fmt.Errorf("%w: max_sessions %d out of range (0,%d]",
			ErrInvalidServer, c.Server.MaxSessions, maxSessions)
	}

	return nil
}

// validateVersion gates the schema version against supportedSchemaRange.
// An empty version is treated as the current schema so files written
// before the field existed keep loading.
func (c *Config) validateVersion() error {
	if c.Version == "" {
		c.Version = CurrentSchemaVersion
		return nil
	}

	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidVersion, c.Version, err)
	}

	constraint, err := semver.NewConstraint(supportedSchemaRange)
	if err != nil {
		return fmt.Errorf("parsing schema constraint %q: %w", supportedSchemaRange, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported range %s)", ErrUnsupportedVersion, c.Version, supportedSchemaRange)
	}

	return nil
}

// Save writes the config as YAML to path. Creating the parent
// directory (EnsureConfigDir) is the caller's job.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
