package kanban

import (
	"github.com/charmbracelet/lipgloss"

	"kanbo/internal/tui/theme"
)

const (
	// Layout constants
	columnWidth             = 40
	columnPaddingHorizontal = 2
	cardPaddingHorizontal   = 1
	cardBorderWidth         = 1
)

var (
	// Title styles
	titleStyle = theme.Title.Padding(0, 1)

	// Column styles
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, columnPaddingHorizontal).
			Width(columnWidth)

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.Primary).
				Align(lipgloss.Center)

	selectedColumnTitleStyle = lipgloss.NewStyle().
					Bold(true).
					Foreground(theme.Warning).
					Background(theme.Surface).
					Underline(true).
					Align(lipgloss.Center)

	selectedColumnStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.BorderFocused).
				Padding(1, columnPaddingHorizontal).
				Width(columnWidth)

	dropColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Warning).
			Padding(1, columnPaddingHorizontal).
			Width(columnWidth)

	// Card styles
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			Padding(0, cardPaddingHorizontal).
			MarginBottom(1)

	selectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(theme.BorderFocused).
				Background(theme.Surface).
				Padding(0, cardPaddingHorizontal).
				MarginBottom(1).
				Bold(true)

	dragCardStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(theme.Warning).
			Background(lipgloss.Color("54")).
			Padding(0, cardPaddingHorizontal).
			MarginBottom(1).
			Bold(true)

	cardPBIStyle = lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true)

	cardBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(theme.Secondary).
			Padding(0, 1)

	cardContentStyle = lipgloss.NewStyle().
				Foreground(theme.Text)

	cardPreviewStyle = lipgloss.NewStyle().
				Foreground(theme.TextMuted)

	// finished cards in a trailing Done column
	cardDoneContentStyle = lipgloss.NewStyle().
				Foreground(theme.TextMuted).
				Strikethrough(true)

	// Help styles
	helpStyle = theme.Muted.Padding(1, 2)

	// Message styles
	errorStyle   = theme.Error
	warningStyle = theme.Warn
	successStyle = theme.Ok

	// Scroll indicator style
	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(theme.Primary).
				Italic(true).
				Align(lipgloss.Center)

	// Modal styles
	cardInputBoxStyle   = theme.ModalBox.Width(60)
	cardInputTitleStyle = theme.ModalTitle.Align(lipgloss.Center)

	cardFormBoxStyle   = theme.ModalBox.Width(64)
	cardFormTitleStyle = theme.ModalTitle
	formLabelStyle     = lipgloss.NewStyle().Foreground(theme.Secondary).Width(16)
	formFocusedStyle   = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Width(16)

	// Filter indicator style
	filterIndicatorStyle = lipgloss.NewStyle().
				Foreground(theme.Warning).
				Bold(true)
)

// modeIndicatorStyle returns a bold style with the given foreground color for mode badges.
func modeIndicatorStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// swatch renders a small block in the color of tag, or nothing for no tag
func swatch(tag string) string {
	c, ok := theme.TagColor(tag)
	if !ok {
		return ""
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}
