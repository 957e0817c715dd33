package tui

import "github.com/charmbracelet/lipgloss"

// Styles shared by the views.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	LabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ValueStyle    = lipgloss.NewStyle().Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	ColumnStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Key bindings.
const (
	keyQuit   = "q"
	keyCtrlC  = "ctrl+c"
	keyEnter  = "enter"
	keyEsc    = "esc"
	keySlash  = "/"
	keyNext   = "n"
	keyRight  = "right"
	keyPrev   = "p"
	keyLeft   = "left"
	keyRows   = "+"
	keySort   = "s"
	keyDesc   = "d"
	keyReload = "r"
)

// Layout defaults.
const (
	defaultWidth         = 100
	defaultHeight        = 24
	minListHeight        = 3
	chromeHeight         = 7
	columnGap            = 2
	maxColumns           = 5
	filterInputCharLimit = 64
	filterInputWidth     = 40
)
