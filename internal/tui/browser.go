package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/pagekit/internal/source"
	listview "github.com/rshade/pagekit/internal/tui/list"
	"github.com/rshade/pagekit/pkg/listapi"
	"github.com/rshade/pagekit/pkg/pagination"
	"github.com/rshade/pagekit/pkg/reactive"
)

// cellsChangedMsg tells the model that one of the API cells changed.
type cellsChangedMsg struct{}

// reloadedMsg carries the result of re-reading the data source.
type reloadedMsg struct {
	err error
}

// ReloadFunc re-reads the records behind the API's fetcher.
type ReloadFunc func(ctx context.Context) error

// BrowserOption configures a BrowserModel.
type BrowserOption func(*BrowserModel)

// WithReload makes the reload key re-read the data source with fn before
// fetching the current page again.
func WithReload(ctx context.Context, fn ReloadFunc) BrowserOption {
	return func(m *BrowserModel) {
		m.ctx = ctx
		m.reload = fn
	}
}

// BrowserModel is the Bubble Tea model for browsing a dataset page by page.
// Keystrokes only write to the filter and pagination cells; rows, totals and
// the loading indicator are redrawn when the API republishes its cells.
type BrowserModel struct {
	api     *listapi.FilteredPageAPI[source.Record, string]
	filter  *reactive.Ref[*string]
	fields  []string
	columns []string

	changes chan struct{}
	stop    []func()

	ctx    context.Context
	reload ReloadFunc

	// View state
	state      ViewState
	rows       *listview.Model[source.Record]
	textInput  textinput.Model
	loading    *LoadingState
	printer    *message.Printer
	showFilter bool
	sortField  int

	width  int
	height int
}

// NewBrowserModel creates a browser over api. filter is the cell api watches;
// fields lists the sortable fields, the first few of which are shown as columns.
func NewBrowserModel(
	api *listapi.FilteredPageAPI[source.Record, string],
	filter *reactive.Ref[*string],
	fields []string,
	opts ...BrowserOption,
) *BrowserModel {
	m := &BrowserModel{
		api:       api,
		filter:    filter,
		fields:    fields,
		columns:   fields[:min(len(fields), maxColumns)],
		changes:   make(chan struct{}, 1),
		state:     ViewStateList,
		textInput: newFilterInput(),
		loading:   NewLoadingState(),
		printer:   message.NewPrinter(language.English),
		sortField: -1,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	for _, opt := range opts {
		opt(m)
	}
	if f := filter.Get(); f != nil {
		m.textInput.SetValue(*f)
	}
	m.rows = listview.New(api.Content.Get(), m.listHeight(), m.renderRow)

	m.stop = []func(){
		api.Loading.OnChange(m.notify),
		api.Error.OnChange(m.notify),
		api.ContentID.OnChange(m.notify),
		api.Descriptor.OnChange(m.notify),
	}
	return m
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Filter records..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// notify runs on whichever goroutine changed a cell; it must not block.
func (m *BrowserModel) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *BrowserModel) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return cellsChangedMsg{}
	}
}

// Close detaches the model from the API cells.
func (m *BrowserModel) Close() {
	for _, stop := range m.stop {
		stop()
	}
	m.stop = nil
}

// Init starts the spinner and the cell listener.
func (m *BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.waitForChange())
}

// Update handles messages and updates the model state.
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rows.SetHeight(m.listHeight())
		return m, nil
	case cellsChangedMsg:
		m.rows.SetRows(m.api.Content.Get())
		return m, m.waitForChange()
	case reloadedMsg:
		if msg.err != nil {
			m.api.Error.Set(fmt.Errorf("reloading source: %w", msg.err))
			return m, nil
		}
		m.api.Update()
		return m, nil
	case spinner.TickMsg:
		return m, m.loading.Update(msg)
	case tea.KeyMsg:
		if m.showFilter {
			return m.handleFilterInput(msg)
		}
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m *BrowserModel) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.showFilter = false
		m.textInput.Blur()
		return m, nil
	case keyCtrlC:
		return m.quit()
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.setFilter(m.textInput.Value())
	return m, cmd
}

func (m *BrowserModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		return m.quit()
	case keySlash:
		m.showFilter = true
		return m, m.textInput.Focus()
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.setFilter("")
		}
	case keyNext, keyRight:
		m.api.NextPage(m.api.TotalPages.Get())
	case keyPrev, keyLeft:
		m.api.PrevPage()
	case keyRows:
		m.api.CycleRowsPerPage()
	case keySort:
		m.cycleSort()
	case keyDesc:
		if m.sortField >= 0 {
			m.api.ToggleSort(m.fields[m.sortField])
		}
	case keyReload:
		return m, m.reloadSource()
	default:
		return m, m.rows.Update(msg)
	}
	return m, nil
}

// reloadSource re-reads the source off the UI goroutine; without a reload
// func it only refetches the current page.
func (m *BrowserModel) reloadSource() tea.Cmd {
	if m.reload == nil {
		m.api.Update()
		return nil
	}
	ctx, reload := m.ctx, m.reload
	return func() tea.Msg {
		return reloadedMsg{err: reload(ctx)}
	}
}

func (m *BrowserModel) quit() (tea.Model, tea.Cmd) {
	m.state = ViewStateQuitting
	m.Close()
	return m, tea.Quit
}

// setFilter publishes the filter text; the API debounces the reload.
func (m *BrowserModel) setFilter(text string) {
	m.filter.Set(&text)
}

// cycleSort moves to the next sortable field, ascending, then back to no sort.
func (m *BrowserModel) cycleSort() {
	m.sortField++
	if m.sortField >= len(m.fields) {
		m.sortField = -1
		m.api.Sort.Set(pagination.SortOptions{})
		return
	}
	m.api.Sort.Set(pagination.SortOptions{
		SortBy:   []string{m.fields[m.sortField]},
		SortDesc: []bool{false},
	})
}

func (m *BrowserModel) listHeight() int {
	return max(m.height-chromeHeight, minListHeight)
}

func (m *BrowserModel) columnWidth() int {
	if len(m.columns) == 0 {
		return m.width
	}
	return max((m.width-columnGap*(len(m.columns)-1))/len(m.columns), 1)
}

func (m *BrowserModel) renderCells(values []string) string {
	w := m.columnWidth()
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = fmt.Sprintf("%-*s", w, truncate(v, w))
	}
	return strings.Join(cells, strings.Repeat(" ", columnGap))
}

func (m *BrowserModel) renderRow(r source.Record, selected bool) string {
	values := make([]string, len(m.columns))
	for i, c := range m.columns {
		values[i] = r.Get(c)
	}
	row := m.renderCells(values)
	if selected {
		return SelectedStyle.Render(row)
	}
	return row
}

// View renders the current view.
func (m *BrowserModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(ColumnStyle.Render(m.renderCells(m.columns)))
	b.WriteString("\n")
	if m.rows.Len() == 0 {
		b.WriteString(SubtleStyle.Render("No matching records."))
	} else {
		b.WriteString(m.rows.View())
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	if err := m.api.Error.Get(); err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Error: " + err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(
		"/ filter  n/p page  + page size  s sort  d direction  r reload  q quit"))
	return b.String()
}

func (m *BrowserModel) renderHeader() string {
	parts := []string{HeaderStyle.Render("pagekit")}
	switch {
	case m.showFilter:
		parts = append(parts, m.textInput.View())
	case m.textInput.Value() != "":
		parts = append(parts, LabelStyle.Render("filter: ")+ValueStyle.Render(m.textInput.Value()))
	default:
		parts = append(parts, SubtleStyle.Render("press / to filter"))
	}
	if m.api.Loading.Get() {
		parts = append(parts, RenderLoading(m.loading))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "  "))
}

func (m *BrowserModel) renderFooter() string {
	p := m.api.Pagination()
	meta := pagination.NewMeta(p, m.api.TotalItems.Get(), m.api.TotalPages.Get())

	footer := m.printer.Sprintf("Page %d of %d", meta.CurrentPage, max(meta.TotalPages, 1))
	if meta.TotalItems > 0 {
		footer += m.printer.Sprintf("  |  %d-%d of %d", meta.FirstItem, meta.LastItem, meta.TotalItems)
	} else {
		footer += "  |  0 records"
	}
	footer += m.printer.Sprintf("  |  %d per page", meta.PageSize)
	if sort := pagination.FormatSort(pagination.SortOptions{SortBy: p.SortBy, SortDesc: p.Descending}); sort != "" {
		footer += "  |  sort " + sort
	}
	return LabelStyle.Render(footer)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
