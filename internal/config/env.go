package config

import (
	"fmt"
	"strconv"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome       = "PAGEKIT_HOME"
	EnvDebounceMs = "PAGEKIT_DEBOUNCE_MS"
	EnvLogLevel   = "PAGEKIT_LOG_LEVEL"
	EnvLogFormat  = "PAGEKIT_LOG_FORMAT"
	EnvSource     = "PAGEKIT_SOURCE"
)

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvDebounceMs); ok && v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvDebounceMs, err)
		}
		c.List.DebounceMs = ms
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvSource); ok && v != "" {
		c.Source.Path = v
	}
	return nil
}
