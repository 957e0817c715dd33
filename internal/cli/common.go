package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/pagekit/internal/config"
	"github.com/rshade/pagekit/internal/logging"
	"github.com/rshade/pagekit/internal/source"
	"github.com/rshade/pagekit/pkg/listapi"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var (
	errNoSource      = errors.New("no dataset given: use --source, source.path in the config or PAGEKIT_SOURCE")
	errNotTerminal   = errors.New("browse needs an interactive terminal; use 'pagekit list' instead")
	errUnknownOutput = errors.New("unknown output format")
)

// openDataset loads the dataset named by override, falling back to the config.
func openDataset(ctx context.Context, cfg *config.Config, override string) (*source.Dataset, error) {
	path := override
	if path == "" {
		path = cfg.Source.Path
	}
	if path == "" {
		return nil, errNoSource
	}

	log := logging.FromContext(ctx)
	ds, err := source.Open(path,
		source.WithLatency(cfg.Source.Latency()),
		source.WithLogger(*log),
	)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("path", path).Msg("failed to open dataset")
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	log.Debug().Ctx(ctx).Str("path", path).Int("records", ds.Len()).Msg("dataset opened")
	return ds, nil
}

// listOptions maps the list section of the config onto helper options.
func listOptions(ctx context.Context, cfg *config.Config) []listapi.Option {
	opts := []listapi.Option{
		listapi.WithDebounce(cfg.List.Debounce()),
		listapi.WithRowsPerPageVariants(cfg.List.RowsPerPageVariants...),
		listapi.WithLogger(*logging.FromContext(ctx)),
	}
	if cfg.List.StaleGuard {
		opts = append(opts, listapi.WithStaleGuard())
	}
	return opts
}
