package kanban

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/operations"
)

type formField int

const (
	fieldPBI formField = iota
	fieldContent
	fieldRemaining
	fieldColor
	fieldCount
)

type formState int

const (
	formEditing formState = iota
	formSaved
	formCancelled
)

// CardFormModel edits every user-facing field of one card
type CardFormModel struct {
	card       models.Card
	pbi        textinput.Model
	content    textarea.Model
	remaining  textinput.Model
	colorIndex int
	focus      formField
	err        error
	width      int
	height     int
}

func NewCardFormModel(card models.Card) CardFormModel {
	pbi := textinput.New()
	pbi.Placeholder = "PBI-123"
	pbi.CharLimit = 40
	pbi.Width = 40
	pbi.SetValue(card.PBIID)

	content := textarea.New()
	content.Placeholder = "Card content"
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.SetWidth(42)
	content.SetHeight(4)
	content.SetValue(card.Content)

	remaining := textinput.New()
	remaining.Placeholder = "hours, empty to clear"
	remaining.CharLimit = 12
	remaining.Width = 20
	if card.RemainingTime != nil {
		remaining.SetValue(strconv.FormatFloat(*card.RemainingTime, 'f', -1, 64))
	}

	m := CardFormModel{
		card:       card.Clone(),
		pbi:        pbi,
		content:    content,
		remaining:  remaining,
		colorIndex: colorOptionIndex(card.ColorTag),
	}
	m.setFocus(fieldPBI)
	return m
}

func colorOptionIndex(tag string) int {
	for i, opt := range models.ColorOptions {
		if opt.Value == tag {
			return i
		}
	}
	return 0
}

func (m CardFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// CardID returns the id of the card being edited
func (m CardFormModel) CardID() string {
	return m.card.ID
}

func (m *CardFormModel) setFocus(f formField) {
	m.focus = f
	m.pbi.Blur()
	m.content.Blur()
	m.remaining.Blur()
	switch f {
	case fieldPBI:
		m.pbi.Focus()
	case fieldContent:
		m.content.Focus()
	case fieldRemaining:
		m.remaining.Focus()
	}
}

// Update handles a key and reports whether the form is still open
func (m CardFormModel) Update(msg tea.KeyMsg) (CardFormModel, formState, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, formCancelled, nil

	case "ctrl+s":
		return m.submit()

	case "tab", "down":
		if msg.String() == "down" && m.focus == fieldContent {
			break
		}
		m.setFocus((m.focus + 1) % fieldCount)
		return m, formEditing, nil

	case "shift+tab", "up":
		if msg.String() == "up" && m.focus == fieldContent {
			break
		}
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, formEditing, nil

	case "enter":
		// newline inside the content area, submit everywhere else
		if m.focus != fieldContent {
			return m.submit()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldPBI:
		m.pbi, cmd = m.pbi.Update(msg)
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
	case fieldRemaining:
		m.remaining, cmd = m.remaining.Update(msg)
	case fieldColor:
		switch msg.String() {
		case "h", "left":
			m.colorIndex = (m.colorIndex + len(models.ColorOptions) - 1) % len(models.ColorOptions)
		case "l", "right":
			m.colorIndex = (m.colorIndex + 1) % len(models.ColorOptions)
		case "backspace", "x":
			m.colorIndex = 0
		}
	}
	return m, formEditing, cmd
}

func (m CardFormModel) submit() (CardFormModel, formState, tea.Cmd) {
	if _, err := m.Patch(); err != nil {
		m.err = err
		return m, formEditing, nil
	}
	return m, formSaved, nil
}

// Patch returns the changes made in the form. Untouched fields stay nil.
func (m CardFormModel) Patch() (operations.CardPatch, error) {
	var patch operations.CardPatch

	if pbi := strings.TrimSpace(m.pbi.Value()); pbi != m.card.PBIID {
		patch.PBIID = &pbi
	}

	content := m.content.Value()
	if strings.TrimSpace(content) == "" {
		return operations.CardPatch{}, errors.New("content cannot be empty")
	}
	if content != m.card.Content {
		patch.Content = &content
	}

	raw := strings.TrimSpace(m.remaining.Value())
	switch {
	case raw == "":
		patch.ClearRemainingTime = m.card.RemainingTime != nil
	default:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return operations.CardPatch{}, errors.New("remaining time must be a number of hours")
		}
		if v < 0 {
			return operations.CardPatch{}, errors.New("remaining time cannot be negative")
		}
		if m.card.RemainingTime == nil || *m.card.RemainingTime != v {
			patch.RemainingTime = &v
		}
	}

	if tag := models.ColorOptions[m.colorIndex].Value; tag != m.card.ColorTag {
		patch.ColorTag = &tag
	}

	return patch, nil
}

func (m CardFormModel) label(f formField, text string) string {
	if m.focus == f {
		return formFocusedStyle.Render("> " + text)
	}
	return formLabelStyle.Render("  " + text)
}

func (m CardFormModel) View() string {
	var s strings.Builder

	s.WriteString(cardFormTitleStyle.Render("Edit Card"))
	s.WriteString("\n\n")

	s.WriteString(m.label(fieldPBI, "PBI ID") + m.pbi.View() + "\n\n")
	s.WriteString(m.label(fieldContent, "Content") + "\n")
	s.WriteString(m.content.View() + "\n\n")
	s.WriteString(m.label(fieldRemaining, "Remaining") + m.remaining.View() + "\n\n")

	opt := models.ColorOptions[m.colorIndex]
	colorText := opt.Label
	if sw := swatch(opt.Value); sw != "" {
		colorText = sw + " " + colorText
	}
	s.WriteString(m.label(fieldColor, "Color") + "◀ " + colorText + " ▶\n")

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("tab: next field • h/l: color • enter/ctrl+s: save • esc: cancel"))

	box := cardFormBoxStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
