package tui

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all dashboard views.
var (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("241")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorHighlight = lipgloss.Color("205")
	ColorBorder    = lipgloss.Color("240")
	ColorBaseline  = lipgloss.Color("110")
	ColorOptimized = lipgloss.Color("114")
)

// Styles composed from the palette.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)
	BoxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// Directional icons for deltas.
const (
	IconArrowUp    = "↑" // up arrow
	IconArrowDown  = "↓" // down arrow
	IconArrowRight = "→" // right arrow
)

// Bar glyphs for the breakdown charts.
const (
	barFilled = "█" // full block
	barEmpty  = "░" // light shade
)

// Key strings matched against tea.KeyMsg.String().
const (
	keyCtrlC  = "ctrl+c"
	keyEnter  = "enter"
	keyEsc    = "esc"
	keyUp     = "up"
	keyDown   = "down"
	keyLeft   = "left"
	keyRight  = "right"
	keyQuit   = "q"
	keySample = "s"
	keyReset  = "r"
)

// Default dimensions used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 32
)
