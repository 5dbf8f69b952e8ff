package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kanbo/internal/kanban/models"
	"kanbo/internal/logs"
	kanbanview "kanbo/internal/tui/kanban"
	"kanbo/internal/tui/messages"
	"kanbo/internal/tui/shared"
)

// BoardStore is what the TUI needs from the board store
type BoardStore interface {
	kanbanview.Store
	Subscriber
}

// AppModel is the root model: the board view plus the help overlay and
// status bar
type AppModel struct {
	boardView kanbanview.BoardModel
	changes   <-chan models.Board
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model. changes delivers boards
// published by the store; notice is shown once on start.
func NewAppModel(ctx context.Context, s kanbanview.Store, changes <-chan models.Board, notice string) AppModel {
	board := kanbanview.NewBoardModel(ctx, s)
	if notice != "" {
		board.SetMessage(notice)
	}
	return AppModel{
		boardView: board,
		changes:   changes,
	}
}

// Run starts the full-screen program and blocks until it exits
func Run(ctx context.Context, s BoardStore, notice string) error {
	changes, stop := watchStore(s)
	defer stop()

	p := tea.NewProgram(
		NewAppModel(ctx, s, changes, notice),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		logs.Logger.Errorw("tui exited with error", "error", err)
		return err
	}
	return nil
}

func (m AppModel) Init() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return messages.WaitForBoardChange(m.changes)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.boardView.SetSize(msg.Width, msg.Height-3) // Reserve space for status bar
		return m, nil

	case messages.BoardChangedMsg:
		var cmd tea.Cmd
		m.boardView, cmd = m.boardView.Update(msg)
		return m, tea.Batch(cmd, messages.WaitForBoardChange(m.changes))

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if !m.boardView.IsModal() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.boardView, cmd = m.boardView.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup(helpSections(), m.width, m.height)
	}

	statusBar := StatusBarStyle.Width(m.width).Render(
		HelpStyle.Render("kanbo | ?: help | q: quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.boardView.View(), statusBar)
}

func helpSections() []shared.HelpSection {
	return []shared.HelpSection{
		{
			Title: "Board",
			Binds: []shared.HelpBind{
				{Key: "h / l", Desc: "Previous / next column"},
				{Key: "j / k", Desc: "Next / previous card"},
				{Key: "g / G", Desc: "First / last card"},
				{Key: "n", Desc: "New card in column"},
				{Key: "enter", Desc: "Edit card"},
				{Key: "D", Desc: "Delete card"},
				{Key: "/", Desc: "Filter cards"},
				{Key: "esc", Desc: "Clear filter"},
			},
		},
		{
			Title: "Moving Cards",
			Binds: []shared.HelpBind{
				{Key: "m / space", Desc: "Pick up card"},
				{Key: "h / l", Desc: "Placeholder to other column"},
				{Key: "j / k", Desc: "Placeholder down / up"},
				{Key: "enter", Desc: "Drop card"},
				{Key: "esc", Desc: "Cancel move"},
			},
		},
		{
			Title: "Edit Form",
			Binds: []shared.HelpBind{
				{Key: "tab", Desc: "Next field"},
				{Key: "h / l", Desc: "Cycle color"},
				{Key: "enter", Desc: "Save (newline in content)"},
				{Key: "ctrl+s", Desc: "Save"},
				{Key: "esc", Desc: "Cancel"},
			},
		},
		{
			Title: "Global",
			Binds: []shared.HelpBind{
				{Key: "?", Desc: "Show this help"},
				{Key: "q", Desc: "Quit"},
				{Key: "ctrl+c", Desc: "Force quit"},
			},
		},
	}
}
