package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagekit/internal/source"
	"github.com/rshade/pagekit/pkg/debounce"
	"github.com/rshade/pagekit/pkg/listapi"
	"github.com/rshade/pagekit/pkg/pagination"
	"github.com/rshade/pagekit/pkg/reactive"
)

type browserFixture struct {
	clock  *debounce.ManualClock
	filter *reactive.Ref[*string]
	api    *listapi.FilteredPageAPI[source.Record, string]
	model  *BrowserModel
}

func newBrowserFixture(t *testing.T) *browserFixture {
	t.Helper()
	records := make([]source.Record, 25)
	for i := range records {
		team := "red"
		if i%2 == 1 {
			team = "blue"
		}
		records[i] = source.Record{
			ID:     fmt.Sprintf("%02d", i+1),
			Fields: map[string]string{"name": fmt.Sprintf("person %02d", i+1), "team": team},
		}
	}
	ds := source.New(records)

	empty := ""
	f := &browserFixture{
		clock:  debounce.NewManualClock(time.Unix(0, 0)),
		filter: reactive.NewRef(&empty),
	}
	f.api = listapi.NewFilteredPageAPI(context.Background(), ds.PageFiltered, f.filter,
		listapi.WithClock(f.clock))
	f.model = NewBrowserModel(f.api, f.filter, ds.Fields())
	t.Cleanup(func() {
		f.model.Close()
		f.api.Close()
	})
	return f
}

func (f *browserFixture) settle() {
	f.clock.Advance(listapi.DefaultDebounce)
	f.api.Wait()
	f.model.Update(cellsChangedMsg{})
}

func (f *browserFixture) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case keyEnter:
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case keyEsc:
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = f.model.Update(msg)
	}
	return cmd
}

func TestBrowser_InitialPage(t *testing.T) {
	f := newBrowserFixture(t)
	assert.Contains(t, f.model.View(), "Loading")

	f.settle()
	view := f.model.View()

	assert.Contains(t, view, "person 01")
	assert.Contains(t, view, "person 10")
	assert.NotContains(t, view, "person 11")
	assert.Contains(t, view, "Page 1 of 3")
	assert.Contains(t, view, "1-10 of 25")
	assert.Contains(t, view, "10 per page")
	assert.NotContains(t, view, "Loading")
}

func TestBrowser_Paging(t *testing.T) {
	f := newBrowserFixture(t)
	f.settle()

	f.press(keyNext)
	assert.Equal(t, 2, f.api.CurrentPage.Get())
	f.settle()
	assert.Contains(t, f.model.View(), "11-20 of 25")

	f.press(keyNext, keyNext)
	assert.Equal(t, 3, f.api.CurrentPage.Get(), "stops at the last page")
	f.settle()

	f.press(keyPrev)
	f.settle()
	assert.Contains(t, f.model.View(), "Page 2 of 3")
}

func TestBrowser_RowsPerPage(t *testing.T) {
	f := newBrowserFixture(t)
	f.settle()
	f.press(keyNext)
	f.settle()

	f.press(keyRows)
	assert.Equal(t, 25, f.api.RowsPerPage.Get())
	assert.Equal(t, 1, f.api.CurrentPage.Get())
	f.settle()

	view := f.model.View()
	assert.Contains(t, view, "Page 1 of 1")
	assert.Contains(t, view, "1-25 of 25")
}

func TestBrowser_Filter(t *testing.T) {
	f := newBrowserFixture(t)
	f.settle()

	f.press(keySlash)
	require.True(t, f.model.showFilter)
	f.press("p", "e", "r", "s", "o", "n", " ", "2")
	assert.Equal(t, "person 2", *f.filter.Get())
	f.press(keyEnter)
	assert.False(t, f.model.showFilter)

	f.settle()
	view := f.model.View()
	assert.Contains(t, view, "filter: person 2")
	assert.Contains(t, view, "1-6 of 6")

	f.press(keyEsc)
	assert.Empty(t, *f.filter.Get())
	f.settle()
	assert.Contains(t, f.model.View(), "1-10 of 25")
}

func TestBrowser_Sort(t *testing.T) {
	f := newBrowserFixture(t)
	f.settle()

	f.press(keySort)
	assert.Equal(t, []string{"id"}, f.api.Pagination().SortBy)
	f.press(keySort)
	assert.Equal(t, []string{"name"}, f.api.Pagination().SortBy)

	f.press(keyDesc)
	assert.Equal(t, []bool{true}, f.api.Pagination().Descending)
	f.settle()
	view := f.model.View()
	assert.Contains(t, view, "sort name:desc")
	assert.Contains(t, view, "person 25")

	f.press(keySort, keySort)
	assert.Empty(t, f.api.Pagination().SortBy, "cycling past the last field clears the sort")
}

func TestBrowser_ShowsError(t *testing.T) {
	f := newBrowserFixture(t)
	f.settle()

	f.api.Sort.Set(pagination.SortOptions{SortBy: []string{"salary"}})
	f.settle()

	assert.Contains(t, f.model.View(), "Error: invalid sort field")
	assert.Contains(t, f.model.View(), "person 01", "previous rows stay visible")
}

func TestBrowser_CellChangesWakeListener(t *testing.T) {
	f := newBrowserFixture(t)
	f.settle()

	f.api.Update()
	msg := f.model.waitForChange()()
	assert.IsType(t, cellsChangedMsg{}, msg)
}

func TestBrowser_Quit(t *testing.T) {
	f := newBrowserFixture(t)
	f.settle()

	cmd := f.press(keyQuit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, f.model.View())

	select {
	case <-f.model.changes:
	default:
	}
	f.api.Update()
	assert.Empty(t, f.model.changes, "detached from the cells")
}

func TestBrowser_WindowSize(t *testing.T) {
	f := newBrowserFixture(t)
	f.press(keyRows)
	f.settle()

	f.model.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	view := f.model.View()
	assert.Contains(t, view, "person 05")
	assert.NotContains(t, view, "person 06")
}

func writeRecords(t *testing.T, path string, names ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("records:\n")
	for i, name := range names {
		fmt.Fprintf(&b, "  - id: \"%d\"\n    name: %s\n", i+1, name)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
}

func newFileBrowserFixture(t *testing.T, path string) *browserFixture {
	t.Helper()
	ds, err := source.Open(path)
	require.NoError(t, err)

	empty := ""
	f := &browserFixture{
		clock:  debounce.NewManualClock(time.Unix(0, 0)),
		filter: reactive.NewRef(&empty),
	}
	ctx := context.Background()
	f.api = listapi.NewFilteredPageAPI(ctx, ds.PageFiltered, f.filter, listapi.WithClock(f.clock))
	f.model = NewBrowserModel(f.api, f.filter, ds.Fields(), WithReload(ctx, ds.Reload))
	t.Cleanup(func() {
		f.model.Close()
		f.api.Close()
	})
	return f
}

func TestBrowser_ReloadRereadsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.yaml")
	writeRecords(t, path, "ada", "grace")
	f := newFileBrowserFixture(t, path)
	f.settle()
	require.Contains(t, f.model.View(), "1-2 of 2")

	writeRecords(t, path, "ada", "grace", "linus")
	cmd := f.press(keyReload)
	require.NotNil(t, cmd)
	assert.NotContains(t, f.model.View(), "linus", "rows change only after the source is read")

	f.model.Update(cmd())
	f.settle()

	view := f.model.View()
	assert.Contains(t, view, "linus")
	assert.Contains(t, view, "1-3 of 3")
}

func TestBrowser_ReloadFailureShowsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.yaml")
	writeRecords(t, path, "ada")
	f := newFileBrowserFixture(t, path)
	f.settle()

	require.NoError(t, os.WriteFile(path, []byte("records: [[["), 0o600))
	cmd := f.press(keyReload)
	require.NotNil(t, cmd)
	f.model.Update(cmd())
	f.model.Update(cellsChangedMsg{})

	view := f.model.View()
	assert.Contains(t, view, "Error: reloading source")
	assert.Contains(t, view, "ada", "previous rows stay visible")
}

func TestBrowser_ReloadWithoutSourceRefetches(t *testing.T) {
	f := newBrowserFixture(t)
	f.settle()

	assert.Nil(t, f.press(keyReload))
	assert.True(t, f.api.Loading.Get())
	f.settle()
	assert.False(t, f.api.Loading.Get())
}
