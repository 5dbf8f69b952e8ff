package tui

import (
	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/store"
)

// Subscriber is the part of the store the TUI listens to
type Subscriber interface {
	Subscribe(fn store.Listener) (unsubscribe func())
}

// watchStore forwards store notifications into a channel holding at most the
// latest board. The listener never blocks the store. stop unsubscribes and
// closes the channel.
func watchStore(s Subscriber) (changes <-chan models.Board, stop func()) {
	ch := make(chan models.Board, 1)

	unsubscribe := s.Subscribe(func(board models.Board) {
		for {
			select {
			case ch <- board:
				return
			default:
			}
			// drop the stale board nobody has read yet
			select {
			case <-ch:
			default:
			}
		}
	})

	return ch, func() {
		unsubscribe()
		close(ch)
	}
}
