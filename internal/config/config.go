// Package config loads pagekit's YAML configuration.
//
// Values are resolved in order: built-in defaults, the config file
// (~/.pagekit/config.yaml or --config), then PAGEKIT_* environment variables.
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/pagekit/pkg/version"
)

// Defaults.
const (
	DefaultDebounceMs    = 500
	DefaultOutputFormat  = "table"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	configDirName        = ".pagekit"
	configFileName       = "config.yaml"
	maxRowsPerPage       = 1000
	configFilePermission = 0o600
	configDirPermission  = 0o700
)

// Validation errors.
var (
	ErrInvalidDebounce     = errors.New("list.debounce_ms must be >= 0")
	ErrInvalidRowsPerPage  = errors.New("list.rows_per_page_variants entries must be between 1 and 1000")
	ErrInvalidLatency      = errors.New("source.latency_ms must be >= 0")
	ErrInvalidOutputFormat = errors.New("output.default_format must be table or json")
	ErrInvalidLogFormat    = errors.New("logging.format must be console or json")
	ErrUnsupportedVersion  = errors.New("pagekit version does not satisfy required_version")
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	outputFormats = []string{"table", "json"}
	logFormats    = []string{"console", "json"}
)

// Config is the pagekit configuration document.
type Config struct {
	List    ListConfig    `yaml:"list"    json:"list"`
	Source  SourceConfig  `yaml:"source"  json:"source"`
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// RequiredVersion is an optional semver constraint on the pagekit binary,
	// e.g. ">= 0.3.0". Development builds only check that it parses.
	RequiredVersion string `yaml:"required_version,omitempty" json:"required_version,omitempty"`

	// path is the file the config was loaded from, if any.
	path string
}

// ListConfig tunes the list helpers.
type ListConfig struct {
	DebounceMs          int   `yaml:"debounce_ms"            json:"debounce_ms"`
	RowsPerPageVariants []int `yaml:"rows_per_page_variants" json:"rows_per_page_variants"`
	StaleGuard          bool  `yaml:"stale_guard"            json:"stale_guard"`
}

// Debounce returns the debounce window as a duration.
func (l ListConfig) Debounce() time.Duration {
	return time.Duration(l.DebounceMs) * time.Millisecond
}

// SourceConfig points at the dataset browsed by the CLI.
type SourceConfig struct {
	Path      string `yaml:"path"       json:"path"`
	LatencyMs int    `yaml:"latency_ms" json:"latency_ms"`
}

// Latency returns the artificial fetch latency.
func (s SourceConfig) Latency() time.Duration {
	return time.Duration(s.LatencyMs) * time.Millisecond
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// LoggingConfig controls log output. An empty File logs to stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"  json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file"   json:"file"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		List: ListConfig{
			DebounceMs:          DefaultDebounceMs,
			RowsPerPageVariants: []int{10, 25, 50},
		},
		Output: OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultDir returns the pagekit config directory. PAGEKIT_HOME overrides it.
func DefaultDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(userHome, configDirName), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load builds a Config from defaults, the file at path and the environment.
// An empty path uses DefaultPath; a missing default file is not an error.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
		cfg.path = path
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.List.DebounceMs < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidDebounce, c.List.DebounceMs)
	}
	for _, v := range c.List.RowsPerPageVariants {
		if v < 1 || v > maxRowsPerPage {
			return fmt.Errorf("%w, got %d", ErrInvalidRowsPerPage, v)
		}
	}
	if c.Source.LatencyMs < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidLatency, c.Source.LatencyMs)
	}
	if c.Output.DefaultFormat != "" && !slices.Contains(outputFormats, c.Output.DefaultFormat) {
		return fmt.Errorf("%w, got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}
	if c.Logging.Format != "" && !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("%w, got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	return c.checkRequiredVersion(version.GetVersion())
}

func (c *Config) checkRequiredVersion(current string) error {
	if c.RequiredVersion == "" {
		return nil
	}
	if _, err := version.ParseConstraint(c.RequiredVersion); err != nil {
		return fmt.Errorf("required_version: %w", err)
	}
	if !version.IsReleaseVersion(current) {
		return nil
	}
	ok, err := version.Check(current, c.RequiredVersion)
	if err != nil {
		return fmt.Errorf("required_version: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s does not match %q", ErrUnsupportedVersion, current, c.RequiredVersion)
	}
	return nil
}

// Save writes the config as YAML to path, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPermission); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, configFilePermission); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
