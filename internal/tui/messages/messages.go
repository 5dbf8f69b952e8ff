package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"kanbo/internal/kanban/models"
)

// BoardChangedMsg carries the board after a change was applied
type BoardChangedMsg struct {
	Board models.Board
}

// WaitForBoardChange blocks until the next board arrives on changes. It
// yields nil once changes is closed. Re-issue it after each BoardChangedMsg.
func WaitForBoardChange(changes <-chan models.Board) tea.Cmd {
	return func() tea.Msg {
		board, ok := <-changes
		if !ok {
			return nil
		}
		return BoardChangedMsg{Board: board}
	}
}
