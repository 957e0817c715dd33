package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyList    = "list"
	keySource  = "source"
	keyOutput  = "output"
	keyLogging = "logging"
	keyVersion = "required_version"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A key present in the file replaces the whole section; absent keys
// and unknown keys leave target unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// decodeSection decodes node into a fresh value so the section is replaced,
// not merged field by field.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyList:
		var v ListConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.List = v
	case keySource:
		var v SourceConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Source = v
	case keyOutput:
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyVersion:
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.RequiredVersion = v
	}
	return nil
}
