package config

import (
	"sync"

	"github.com/rshade/pagekit/internal/logging"
)

//nolint:gochecknoglobals // Process-wide configuration shared by the CLI commands.
var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// InitGlobalConfig loads the config at path and makes it the global config.
func InitGlobalConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	SetGlobalConfig(cfg)
	return nil
}

// SetGlobalConfig replaces the global config.
func SetGlobalConfig(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// GetGlobalConfig returns the global config, or defaults when none was loaded.
func GetGlobalConfig() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalCfg == nil {
		return New()
	}
	return globalCfg
}

// ToLoggingConfig converts the logging section for the logging package.
// A configured file switches the output to that file.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
