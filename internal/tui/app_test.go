package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/operations"
	"kanbo/internal/kanban/persist"
	"kanbo/internal/kanban/store"
	"kanbo/internal/storage"
	"kanbo/internal/tui/messages"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	n := 0
	ids := operations.IDSource(func() string {
		n++
		return fmt.Sprintf("id%06d", n)
	})
	s := store.New(persist.New(storage.NewMemory(), persist.WithIDSource(ids)), store.WithIDSource(ids))
	s.Load(context.Background())
	return s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWatchStoreKeepsLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	changes, stop := watchStore(s)

	todo := s.Snapshot().Columns[0].ID
	for i := range 3 {
		s.AddCard(ctx, todo, fmt.Sprintf("card %d", i))
	}

	select {
	case board := <-changes:
		assert.Equal(t, 7, board.CardCount(), "only the newest board is buffered")
	default:
		t.Fatal("expected a pending board")
	}

	select {
	case <-changes:
		t.Fatal("stale boards should have been dropped")
	default:
	}

	stop()
	_, ok := <-changes
	assert.False(t, ok, "stop closes the channel")

	// the store no longer calls the listener
	assert.NotPanics(t, func() { s.AddCard(ctx, todo, "after stop") })
}

func TestWaitForBoardChange(t *testing.T) {
	ch := make(chan models.Board, 1)
	ch <- models.Board{Columns: []models.Column{{ID: "c1", Title: "Only"}}}

	msg := messages.WaitForBoardChange(ch)()
	changed, ok := msg.(messages.BoardChangedMsg)
	require.True(t, ok)
	assert.Equal(t, "Only", changed.Board.Columns[0].Title)

	close(ch)
	assert.Nil(t, messages.WaitForBoardChange(ch)())
}

func TestAppForwardsBoardChanges(t *testing.T) {
	s := newTestStore(t)
	changes, stop := watchStore(s)
	defer stop()

	var m tea.Model = NewAppModel(context.Background(), s, changes, "")
	require.NotNil(t, m.Init())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})

	board := s.Snapshot()
	s.AddCard(context.Background(), board.Columns[2].ID, "Ship it")
	msg := <-changes

	m, cmd := m.Update(messages.BoardChangedMsg{Board: msg})
	assert.NotNil(t, cmd, "waits for the next change")

	app := m.(AppModel)
	assert.Equal(t, 5, app.boardView.Board().CardCount())
	assert.Contains(t, app.View(), "Ship it")
}

func TestAppHelpAndQuit(t *testing.T) {
	s := newTestStore(t)
	var m tea.Model = NewAppModel(context.Background(), s, nil, "Started with the default board")
	assert.Nil(t, m.Init())
	assert.Equal(t, "Loading...", m.View())

	m, _ = m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	assert.Contains(t, m.View(), "Started with the default board")

	m, _ = m.Update(runes("?"))
	assert.True(t, m.(AppModel).showHelp)
	assert.Contains(t, m.View(), "Moving Cards")

	// any key closes help without acting on it
	m, cmd := m.Update(runes("q"))
	assert.False(t, m.(AppModel).showHelp)
	assert.Nil(t, cmd)

	_, cmd = m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppLeavesKeysToModalBoard(t *testing.T) {
	s := newTestStore(t)
	var m tea.Model = NewAppModel(context.Background(), s, nil, "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})

	m, _ = m.Update(runes("n"))
	m, _ = m.Update(runes("q"))
	m, _ = m.Update(runes("?"))

	app := m.(AppModel)
	assert.False(t, app.showHelp)
	assert.True(t, app.boardView.IsModal())
	assert.Contains(t, app.View(), "New card in To Do")
}
