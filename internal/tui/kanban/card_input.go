package kanban

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CardInputModel asks for the content of a new card
type CardInputModel struct {
	textInput   textinput.Model
	columnTitle string
	width       int
	height      int
}

func NewCardInputModel(columnTitle string) CardInputModel {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 50

	return CardInputModel{
		textInput:   ti,
		columnTitle: columnTitle,
	}
}

func (m CardInputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update returns done=true when the input was submitted or abandoned;
// submitted tells which.
func (m CardInputModel) Update(msg tea.KeyMsg) (model CardInputModel, done, submitted bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, true, false, nil
	case "enter":
		return m, true, true, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, false, false, cmd
}

func (m CardInputModel) View() string {
	var s strings.Builder

	s.WriteString(cardInputTitleStyle.Render("New card in " + m.columnTitle))
	s.WriteString("\n\n")

	s.WriteString(m.textInput.View())
	s.WriteString("\n\n")

	s.WriteString(helpStyle.Render("enter: add • esc: cancel"))

	box := cardInputBoxStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Content returns the entered text. Surrounding whitespace is kept.
func (m CardInputModel) Content() string {
	return m.textInput.Value()
}
