// Package cli implements the pagekit command line.
package cli

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/pagekit/internal/config"
	"github.com/rshade/pagekit/internal/logging"
	"github.com/rshade/pagekit/pkg/version"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Replaced by setupLogging for each command.

// NewRootCmd creates the root command for the pagekit CLI.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:           "pagekit",
		Short:         "Browse and page through record datasets",
		Long:          "pagekit: filter, sort and page through YAML or JSON datasets, interactively or as a table.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationSkipConfigLoad] == "true" {
				config.SetGlobalConfig(config.New())
			} else if err := config.InitGlobalConfig(configPath); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.SetVersionTemplate(versionTemplate(ver))
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default ~/.pagekit/config.yaml)")
	cmd.AddCommand(NewBrowseCmd(), NewListCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse a dataset interactively
  pagekit browse --source people.yaml

  # Print the second page of matches, 25 rows per page, sorted by name
  pagekit list --source people.yaml --filter ada --page 2 --page-size 25 --sort name:asc

  # Print every match as JSON
  pagekit list --source people.yaml --all --output json

  # Show the effective configuration
  pagekit config show`

// versionTemplate marks prerelease and unversioned builds in --version output.
// ver may carry a trailing "(commit)".
func versionTemplate(ver string) string {
	const base = "{{.Name}} version {{.Version}}"
	fields := strings.Fields(ver)
	if len(fields) > 0 && version.IsReleaseVersion(fields[0]) {
		return base + "\n"
	}
	return base + " (development build)\n"
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigShowCmd(), NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}
