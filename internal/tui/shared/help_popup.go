// Package shared holds view pieces used by more than one screen
package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanbo/internal/tui/theme"
)

// HelpBind is one key and what it does
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection groups the binds of one mode
type HelpSection struct {
	Title string
	Binds []HelpBind
}

const dismissHint = "Press any key to close"

var (
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	helpKeyStyle     = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	helpDescStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	helpDismissStyle = lipgloss.NewStyle().Foreground(theme.TextMuted)
	helpBoxStyle     = theme.ModalBox
)

// RenderHelpPopup renders sections in a box centered in width x height. The
// key column is as wide as the longest key.
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	keyWidth := keyColumnWidth(sections)

	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(helpSectionStyle.Render(section.Title))
		b.WriteString("\n")
		for _, bind := range section.Binds {
			b.WriteString("  ")
			b.WriteString(helpKeyStyle.Width(keyWidth).Render(bind.Key))
			b.WriteString(helpDescStyle.Render(bind.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(helpDismissStyle.Render(dismissHint))

	box := helpBoxStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func keyColumnWidth(sections []HelpSection) int {
	widest := 0
	for _, section := range sections {
		for _, bind := range section.Binds {
			widest = max(widest, lipgloss.Width(bind.Key))
		}
	}
	return widest + 2
}
