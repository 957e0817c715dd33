package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/pagekit/internal/config"
	"github.com/rshade/pagekit/internal/logging"
	"github.com/rshade/pagekit/internal/source"
	"github.com/rshade/pagekit/pkg/debounce"
	"github.com/rshade/pagekit/pkg/listapi"
	"github.com/rshade/pagekit/pkg/pagination"
	"github.com/rshade/pagekit/pkg/reactive"
)

type listFlags struct {
	source   string
	filter   string
	page     int
	pageSize int
	sort     string
	all      bool
	output   string
}

// listResult is what list prints.
type listResult struct {
	Items  []source.Record `json:"items"`
	Meta   pagination.Meta `json:"meta"`
	Sort   string          `json:"sort,omitempty"`
	Filter string          `json:"filter,omitempty"`
	Fields []string        `json:"-"`
}

// NewListCmd creates the list command, which prints one page (or every page) of matches.
func NewListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a page of records",
		Long: `Prints one page of the records matching --filter.

Filtering is a case-insensitive substring match over every field. --sort takes
a comma separated list of field or field:order terms.`,
		Example: `  # First page with the configured page size
  pagekit list --source people.yaml

  # Third page of platform engineers, 25 per page, by name then id descending
  pagekit list --source people.yaml --filter platform --page 3 --page-size 25 --sort name,id:desc

  # Every match as JSON
  pagekit list --source people.yaml --all --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.source, "source", "", "dataset file (YAML or JSON)")
	cmd.Flags().StringVar(&flags.filter, "filter", "", "case-insensitive substring filter")
	cmd.Flags().IntVar(&flags.page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "rows per page (default: first configured variant)")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "sort expression, e.g. name:asc,id:desc")
	cmd.Flags().BoolVar(&flags.all, "all", false, "print every matching record")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output format: table or json (default from config)")

	return cmd
}

func runList(cmd *cobra.Command, flags listFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	format := flags.output
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	if format != outputTable && format != outputJSON {
		return fmt.Errorf("%w: %q", errUnknownOutput, format)
	}

	params := pagination.Params{Page: flags.page, PageSize: flags.pageSize, Sort: flags.sort}
	if err := params.Validate(); err != nil {
		return err
	}

	ds, err := openDataset(ctx, cfg, flags.source)
	if err != nil {
		return err
	}

	start := time.Now()
	var result *listResult
	if flags.all {
		result, err = fetchAll(ctx, cfg, ds, flags.filter, params)
	} else {
		result, err = fetchPage(ctx, cfg, ds, flags.filter, params)
	}
	if err != nil {
		return err
	}
	result.Fields = ds.Fields()
	log.Debug().Ctx(ctx).
		Int("items", len(result.Items)).
		Int("total", result.Meta.TotalItems).
		Dur("duration", time.Since(start)).
		Msg("list complete")

	if format == outputJSON {
		return renderListJSON(cmd.OutOrStdout(), result)
	}
	return renderListTable(cmd.OutOrStdout(), result)
}

// fetchPage loads one page through a FilteredPageAPI. The helper runs on a
// manual clock so the single load is started by Flush instead of a timer.
func fetchPage(
	ctx context.Context,
	cfg *config.Config,
	ds *source.Dataset,
	filter string,
	params pagination.Params,
) (*listResult, error) {
	filterCell := reactive.NewRef(&filter)
	opts := append(listOptions(ctx, cfg), listapi.WithClock(debounce.NewManualClock(time.Now())))
	api := listapi.NewFilteredPageAPI(ctx, ds.PageFiltered, filterCell, opts...)
	defer api.Close()

	if err := params.ApplyTo(api.State); err != nil {
		return nil, err
	}
	api.Flush()
	api.Wait()

	if err := api.Error.Get(); err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	p := api.Pagination()
	return &listResult{
		Items:  api.Content.Get(),
		Meta:   pagination.NewMeta(p, api.TotalItems.Get(), api.TotalPages.Get()),
		Sort:   params.Sort,
		Filter: filter,
	}, nil
}

// fetchAll loads the first page to learn the page count, then the remaining
// pages concurrently, and concatenates them in order.
func fetchAll(
	ctx context.Context,
	cfg *config.Config,
	ds *source.Dataset,
	filter string,
	params pagination.Params,
) (*listResult, error) {
	params.Page = pagination.DefaultPage
	first, err := fetchPage(ctx, cfg, ds, filter, params)
	if err != nil {
		return nil, err
	}

	sortOpts, err := pagination.ParseSort(params.Sort)
	if err != nil {
		return nil, err
	}
	rows := first.Meta.PageSize
	pages := make([][]source.Record, max(first.Meta.TotalPages, 1))
	pages[0] = first.Items

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 1; i < len(pages); i++ {
		g.Go(func() error {
			page, pageErr := ds.PageFiltered(gCtx, filter, pagination.Pagination{
				Page:        i + 1,
				RowsPerPage: rows,
				SortBy:      sortOpts.SortBy,
				Descending:  padDesc(sortOpts),
			})
			if pageErr != nil {
				return fmt.Errorf("fetching page %d: %w", i+1, pageErr)
			}
			pages[i] = page.Content
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	items := make([]source.Record, 0, first.Meta.TotalItems)
	for _, p := range pages {
		items = append(items, p...)
	}
	return &listResult{
		Items: items,
		Meta: pagination.NewMeta(
			pagination.Pagination{Page: pagination.DefaultPage, RowsPerPage: max(len(items), 1)},
			len(items), 1),
		Sort:   params.Sort,
		Filter: filter,
	}, nil
}

func padDesc(opts pagination.SortOptions) []bool {
	desc := make([]bool, len(opts.SortBy))
	copy(desc, opts.SortDesc)
	return desc
}

func renderListJSON(w io.Writer, result *listResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func renderListTable(w io.Writer, result *listResult) error {
	p := message.NewPrinter(language.English)

	if len(result.Items) == 0 {
		_, err := fmt.Fprintln(w, "No matching records.")
		return err
	}

	rows := make([][]string, len(result.Items))
	for i, r := range result.Items {
		row := make([]string, len(result.Fields))
		for j, f := range result.Fields {
			row[j] = r.Get(f)
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(result.Fields...).
		Rows(rows...)
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	meta := result.Meta
	_, err := p.Fprintf(w, "Page %d of %d, items %d-%d of %d\n",
		meta.CurrentPage, max(meta.TotalPages, 1), meta.FirstItem, meta.LastItem, meta.TotalItems)
	return err
}
