package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pagekit/pkg/pagination"
)

// ErrNoFile is returned by Reload on a dataset that was not loaded from a file.
var ErrNoFile = errors.New("dataset has no backing file")

// document is the on-disk layout. JSON files parse as YAML.
type document struct {
	Records []map[string]string `yaml:"records"`
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithLatency delays every fetch by d, honouring context cancellation.
func WithLatency(d time.Duration) Option {
	return func(ds *Dataset) {
		if d > 0 {
			ds.latency = d
		}
	}
}

// WithLogger sets the logger for load and fetch events.
func WithLogger(l zerolog.Logger) Option {
	return func(ds *Dataset) {
		ds.log = l.With().Str("component", "source").Logger()
	}
}

// WithLanguage sets the collation used when sorting text fields.
func WithLanguage(tag language.Tag) Option {
	return func(ds *Dataset) {
		ds.lang = tag
	}
}

// Dataset is a set of records safe for concurrent fetches.
type Dataset struct {
	mu      sync.RWMutex
	records []Record
	fields  []string

	path    string
	latency time.Duration
	lang    language.Tag
	log     zerolog.Logger
	reloads singleflight.Group
}

// New creates a dataset over records.
func New(records []Record, opts ...Option) *Dataset {
	ds := &Dataset{lang: language.English, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(ds)
	}
	ds.set(records)
	return ds
}

// Open loads a dataset from a YAML or JSON file.
func Open(path string, opts ...Option) (*Dataset, error) {
	records, err := readFile(path)
	if err != nil {
		return nil, err
	}
	ds := New(records, opts...)
	ds.path = path
	ds.log.Debug().Str("path", path).Int("records", len(records)).Msg("dataset loaded")
	return ds, nil
}

func readFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	var doc document
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	records := make([]Record, 0, len(doc.Records))
	for i, raw := range doc.Records {
		r, recErr := recordFromMap(raw, i)
		if recErr != nil {
			return nil, fmt.Errorf("parsing dataset %s: %w", path, recErr)
		}
		records = append(records, r)
	}
	return records, nil
}

func (ds *Dataset) set(records []Record) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.records = records
	ds.fields = fieldNames(records)
}

// Reload re-reads the backing file. Concurrent calls share one read.
func (ds *Dataset) Reload(ctx context.Context) error {
	if ds.path == "" {
		return ErrNoFile
	}
	_, err, shared := ds.reloads.Do(ds.path, func() (any, error) {
		records, err := readFile(ds.path)
		if err != nil {
			return nil, err
		}
		ds.set(records)
		return len(records), nil
	})
	ds.log.Debug().Ctx(ctx).Str("path", ds.path).Bool("shared", shared).Err(err).Msg("dataset reloaded")
	return err
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return len(ds.records)
}

// Fields returns the sortable field names, "id" first.
func (ds *Dataset) Fields() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return append([]string(nil), ds.fields...)
}

// snapshot returns the records matching query.
func (ds *Dataset) snapshot(query string) ([]Record, []string) {
	q := strings.ToLower(strings.TrimSpace(query))
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	out := make([]Record, 0, len(ds.records))
	for _, r := range ds.records {
		if r.Matches(q) {
			out = append(out, r)
		}
	}
	return out, ds.fields
}

// List returns every record. It satisfies listapi.ReadList.
func (ds *Dataset) List(ctx context.Context) ([]Record, error) {
	return ds.ListFiltered(ctx, "")
}

// ListFiltered returns the records matching query.
// It satisfies listapi.ReadFilteredList.
func (ds *Dataset) ListFiltered(ctx context.Context, query string) ([]Record, error) {
	if err := ds.wait(ctx); err != nil {
		return nil, err
	}
	records, _ := ds.snapshot(query)
	ds.log.Debug().Ctx(ctx).Str("filter", query).Int("matches", len(records)).Msg("list fetched")
	return records, nil
}

// Page returns one page of all records. It satisfies listapi.ReadPage.
func (ds *Dataset) Page(ctx context.Context, p pagination.Pagination) (pagination.Page[Record], error) {
	return ds.PageFiltered(ctx, "", p)
}

// PageFiltered returns one page of the records matching query, sorted by
// p.SortBy. It satisfies listapi.ReadFilteredPage.
func (ds *Dataset) PageFiltered(
	ctx context.Context,
	query string,
	p pagination.Pagination,
) (pagination.Page[Record], error) {
	if err := p.Validate(); err != nil {
		return pagination.Page[Record]{}, fmt.Errorf("invalid pagination: %w", err)
	}
	if err := ds.wait(ctx); err != nil {
		return pagination.Page[Record]{}, err
	}

	records, fields := ds.snapshot(query)
	sorter := ds.sorter(fields)
	opts := pagination.SortOptions{SortBy: p.SortBy, SortDesc: p.Descending}
	if err := sorter.Validate(opts); err != nil {
		return pagination.Page[Record]{}, err
	}

	sorted := sorter.Sort(records, opts)
	content := pagination.Slice(sorted, p)
	page := pagination.Page[Record]{
		Content:       append([]Record{}, content...),
		TotalElements: len(sorted),
		TotalPages:    pagination.CalculateTotalPages(len(sorted), p.RowsPerPage),
	}

	ds.log.Debug().Ctx(ctx).
		Str("filter", query).
		Int("page", p.Page).
		Int("rows_per_page", p.RowsPerPage).
		Int("total", page.TotalElements).
		Msg("page fetched")
	return page, nil
}

// sorter builds a Sorter over fields. Numeric values compare as numbers,
// everything else through a collator, which is not safe to share.
func (ds *Dataset) sorter(fields []string) *pagination.Sorter[Record] {
	coll := collate.New(ds.lang, collate.IgnoreCase, collate.Numeric)
	var mu sync.Mutex
	compare := func(a, b string) int {
		if af, aErr := strconv.ParseFloat(a, 64); aErr == nil {
			if bf, bErr := strconv.ParseFloat(b, 64); bErr == nil {
				switch {
				case af < bf:
					return -1
				case af > bf:
					return 1
				default:
					return 0
				}
			}
		}
		mu.Lock()
		defer mu.Unlock()
		return coll.CompareString(a, b)
	}

	cmps := make(map[string]pagination.CompareFunc[Record], len(fields))
	for _, f := range fields {
		cmps[f] = func(a, b Record) int { return compare(a.Get(f), b.Get(f)) }
	}
	return pagination.NewSorter(cmps)
}

func (ds *Dataset) wait(ctx context.Context) error {
	if ds.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(ds.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
