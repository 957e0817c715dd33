package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pagekit/internal/config"
)

// annotationSkipConfigLoad marks commands that must run without a valid config file.
const annotationSkipConfigLoad = "pagekit/skip-config-load"

// NewConfigShowCmd prints the effective configuration.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Prints the configuration after merging defaults, the config file and PAGEKIT_* environment variables.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			w := cmd.OutOrStdout()
			switch output {
			case outputYAML:
				if cfg.Path() != "" {
					_, _ = fmt.Fprintf(w, "# loaded from %s\n", cfg.Path())
				}
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2) //nolint:mnd // Conventional YAML indent.
				if err := enc.Encode(cfg); err != nil {
					return err
				}
				return enc.Close()
			case outputJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			default:
				return fmt.Errorf("%w: %q", errUnknownOutput, output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputYAML, "output format: yaml or json")
	return cmd
}

// NewConfigInitCmd writes a config file with default values.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Initialize configuration file with default values",
		Annotations: map[string]string{annotationSkipConfigLoad: "true"},
		Example: `  # Create ~/.pagekit/config.yaml
  pagekit config init

  # Create a config elsewhere, overwriting it
  pagekit config init --config ./pagekit.yaml --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}

			if err := config.New().Save(path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

// NewConfigValidateCmd reports whether the configuration loads and validates.
// Loading happens before any command runs, so reaching RunE means it is valid.
func NewConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Path() == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No config file found; defaults are valid")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %s\n", cfg.Path())
			return nil
		},
	}
}
