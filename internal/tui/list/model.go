package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one row. selected is true for the row under the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a cursor over rows with a scrolling window of height rows.
type Model[T any] struct {
	rows   []T
	render RenderFunc[T]

	cursor int
	offset int
	height int
}

// New creates a model showing rows in a window of height lines.
func New[T any](rows []T, height int, render RenderFunc[T]) *Model[T] {
	m := &Model[T]{rows: rows, render: render, height: max(height, 1)}
	m.clamp()
	return m
}

// SetRows replaces the rows, keeping the cursor in range.
func (m *Model[T]) SetRows(rows []T) {
	m.rows = rows
	m.clamp()
}

// SetHeight resizes the window.
func (m *Model[T]) SetHeight(height int) {
	m.height = max(height, 1)
	m.clamp()
}

// Update moves the cursor on navigation keys. Other messages are ignored.
//
//nolint:exhaustive // Only navigation keys are handled.
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.rows) == 0 {
		return nil
	}

	switch key.Type {
	case tea.KeyUp:
		m.cursor--
	case tea.KeyDown:
		m.cursor++
	case tea.KeyPgUp:
		m.cursor -= m.height
	case tea.KeyPgDown:
		m.cursor += m.height
	case tea.KeyHome:
		m.cursor = 0
	case tea.KeyEnd:
		m.cursor = len(m.rows) - 1
	case tea.KeyRunes:
		switch key.String() {
		case "j":
			m.cursor++
		case "k":
			m.cursor--
		}
	}
	m.clamp()
	return nil
}

// clamp keeps the cursor on a row and the window around the cursor.
func (m *Model[T]) clamp() {
	if len(m.rows) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor, 0), len(m.rows)-1)

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	m.offset = min(m.offset, max(len(m.rows)-m.height, 0))
}

// View renders the rows inside the window.
func (m *Model[T]) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	end := min(m.offset+m.height, len(m.rows))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.render(m.rows[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of rows.
func (m *Model[T]) Len() int {
	return len(m.rows)
}

// Cursor returns the index of the selected row.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// Window returns the first visible row index and the index past the last one.
//
//nolint:nonamedreturns // Named returns document the pair.
func (m *Model[T]) Window() (from, to int) {
	return m.offset, min(m.offset+m.height, len(m.rows))
}

// Selected returns the row under the cursor, or nil when there are none.
func (m *Model[T]) Selected() *T {
	if len(m.rows) == 0 {
		return nil
	}
	return &m.rows[m.cursor]
}
