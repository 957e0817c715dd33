package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/pagekit/internal/config"
	"github.com/rshade/pagekit/internal/logging"
	"github.com/rshade/pagekit/internal/tui"
	"github.com/rshade/pagekit/pkg/listapi"
	"github.com/rshade/pagekit/pkg/reactive"
)

// NewBrowseCmd creates the interactive browse command.
func NewBrowseCmd() *cobra.Command {
	var (
		sourcePath string
		filter     string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse records interactively",
		Long: `Opens an interactive browser over a dataset.

Typing in the filter box reloads the first page after the configured debounce
window. Use n/p to change page, + to change the page size, s and d to sort and r to
re-read the dataset file.`,
		Example: `  pagekit browse --source people.yaml
  pagekit browse --source people.yaml --filter ada`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
				return errNotTerminal
			}

			ctx := cmd.Context()
			cfg := config.GetGlobalConfig()
			ds, err := openDataset(ctx, cfg, sourcePath)
			if err != nil {
				return err
			}

			filterCell := reactive.NewRef(&filter)
			api := listapi.NewFilteredPageAPI(ctx, ds.PageFiltered, filterCell, listOptions(ctx, cfg)...)
			defer api.Close()

			model := tui.NewBrowserModel(api, filterCell, ds.Fields(), tui.WithReload(ctx, ds.Reload))
			defer model.Close()

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err = p.Run(); err != nil {
				logging.FromContext(ctx).Error().Ctx(ctx).Err(err).Msg("browser exited with error")
				return fmt.Errorf("running browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "dataset file (YAML or JSON)")
	cmd.Flags().StringVar(&filter, "filter", "", "initial filter")

	return cmd
}
