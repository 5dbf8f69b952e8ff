package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Color palette: ANSI 0-15 + one 256-color accent
// ---------------------------------------------------------------------------

var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary       = lipgloss.Color("4")   // blue
	Secondary     = lipgloss.Color("6")   // cyan
	Accent        = lipgloss.Color("5")   // magenta
	Success       = lipgloss.Color("2")   // green
	Warning       = lipgloss.Color("3")   // yellow
	Danger        = lipgloss.Color("1")   // red
	Surface       = lipgloss.Color("236") // dark bg
	Border        = lipgloss.Color("8")   // dim
	BorderFocused = lipgloss.Color("4")   // blue
)

// tagColors maps card color tags to true-color values; lipgloss degrades
// them on terminals with fewer colors
var tagColors = map[string]lipgloss.Color{
	"red.500":    lipgloss.Color("#E53E3E"),
	"orange.500": lipgloss.Color("#DD6B20"),
	"yellow.500": lipgloss.Color("#D69E2E"),
	"green.500":  lipgloss.Color("#38A169"),
	"teal.500":   lipgloss.Color("#319795"),
	"blue.500":   lipgloss.Color("#3182CE"),
	"cyan.500":   lipgloss.Color("#00B5D8"),
	"purple.500": lipgloss.Color("#805AD5"),
	"pink.500":   lipgloss.Color("#D53F8C"),
	"gray.500":   lipgloss.Color("#718096"),
}

// TagColor returns the color for a card color tag. Tags outside the palette
// get Accent; ok is false for the empty tag.
func TagColor(tag string) (lipgloss.Color, bool) {
	if tag == "" {
		return "", false
	}
	if c, found := tagColors[tag]; found {
		return c, true
	}
	return Accent, true
}

// ---------------------------------------------------------------------------
// Semantic text styles
// ---------------------------------------------------------------------------

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)
	Bold     = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)
)

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	ModalHelp = lipgloss.NewStyle().Foreground(TextMuted)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)
)
