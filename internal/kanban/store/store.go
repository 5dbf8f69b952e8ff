// Package store holds the current board and applies operations to it. Every
// applied mutation is saved in full and then announced to subscribers.
package store

import (
	"context"
	"sync"

	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/operations"
	"kanbo/internal/kanban/persist"
	"kanbo/internal/logs"
)

// Persister saves and restores the whole board
type Persister interface {
	Load(ctx context.Context) persist.LoadResult
	Save(ctx context.Context, board models.Board) error
}

// Listener receives the board after each applied change
type Listener func(models.Board)

// Result describes what a mutation did
type Result struct {
	Outcome operations.Outcome
	// Card is the card that was added, edited or deleted
	Card models.Card
	// SaveErr is set when the change was applied but could not be saved
	SaveErr error
}

// Applied returns true if the mutation changed the board
func (r Result) Applied() bool {
	return r.Outcome.Applied()
}

type subscription struct {
	id uint64
	fn Listener
}

// Store is safe for concurrent use
type Store struct {
	persister Persister
	ids       operations.IDSource

	mu     sync.Mutex
	board  models.Board
	subs   []subscription
	nextID uint64
}

// Option configures a Store
type Option func(*Store)

// WithIDSource sets the id generator used for new cards
func WithIDSource(ids operations.IDSource) Option {
	return func(s *Store) {
		s.ids = ids
	}
}

// WithBoard sets the initial board without loading it
func WithBoard(board models.Board) Option {
	return func(s *Store) {
		s.board = board.Clone()
	}
}

// New creates a store. Call Load once before using it unless WithBoard was given.
func New(persister Persister, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		ids:       operations.NewUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the current board with the persisted one. It does not save
// and does not notify. Returns true if the default board was used.
func (s *Store) Load(ctx context.Context) bool {
	res := s.persister.Load(ctx)

	s.mu.Lock()
	s.board = res.Board
	s.mu.Unlock()

	return res.Seeded
}

// Snapshot returns a copy of the current board
func (s *Store) Snapshot() models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.board.Clone()
}

// Subscribe registers fn to run after every applied change, in registration
// order. The returned func removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// AddCard appends a card with the given content to a column
func (s *Store) AddCard(ctx context.Context, columnID, content string) Result {
	return s.mutate(ctx, "add", func(b models.Board) (models.Board, models.Card, operations.Outcome) {
		return operations.AddCard(b, columnID, content, s.ids)
	})
}

// DeleteCard removes a card from a column
func (s *Store) DeleteCard(ctx context.Context, columnID, cardID string) Result {
	return s.mutate(ctx, "delete", func(b models.Board) (models.Board, models.Card, operations.Outcome) {
		return operations.DeleteCard(b, columnID, cardID)
	})
}

// EditCard merges patch into the card with the given id
func (s *Store) EditCard(ctx context.Context, cardID string, patch operations.CardPatch) Result {
	return s.mutate(ctx, "edit", func(b models.Board) (models.Board, models.Card, operations.Outcome) {
		return operations.EditCard(b, cardID, patch)
	})
}

// MoveCard moves a card between positions
func (s *Store) MoveCard(ctx context.Context, srcColumnID string, srcIndex int, dstColumnID string, dstIndex int, cardID string) Result {
	return s.mutate(ctx, "move", func(b models.Board) (models.Board, models.Card, operations.Outcome) {
		next, outcome := operations.MoveCard(b, srcColumnID, srcIndex, dstColumnID, dstIndex, cardID)
		return next, movedCard(next, cardID, outcome), outcome
	})
}

// ApplyDrop applies the end of a drag gesture
func (s *Store) ApplyDrop(ctx context.Context, drop operations.DropResult) Result {
	return s.mutate(ctx, "drop", func(b models.Board) (models.Board, models.Card, operations.Outcome) {
		next, outcome := operations.ApplyDrop(b, drop)
		return next, movedCard(next, drop.DraggableID, outcome), outcome
	})
}

// Replace swaps in a whole new board, then saves and notifies. A board that
// holds the same card id twice is Invalid.
func (s *Store) Replace(ctx context.Context, board models.Board) Result {
	return s.mutate(ctx, "replace", func(current models.Board) (models.Board, models.Card, operations.Outcome) {
		if _, dup := board.DuplicateCardID(); dup {
			return current, models.Card{}, operations.OutcomeInvalid
		}
		return board.Clone(), models.Card{}, operations.OutcomeApplied
	})
}

func movedCard(board models.Board, cardID string, outcome operations.Outcome) models.Card {
	if !outcome.Applied() {
		return models.Card{}
	}
	col, idx := board.FindCard(cardID)
	if col < 0 {
		return models.Card{}
	}
	return board.Columns[col].Cards[idx].Clone()
}

type operation func(models.Board) (models.Board, models.Card, operations.Outcome)

// mutate runs op against the current board. The lock is held through save and
// notification so observers see changes in the order they were applied.
// Listeners must not call back into the store.
func (s *Store) mutate(ctx context.Context, name string, op operation) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, card, outcome := op(s.board)
	res := Result{Outcome: outcome, Card: card}

	if !outcome.Applied() {
		logs.Logger.Debugw("Mutation not applied", "op", name, "outcome", outcome.String())
		return res
	}

	s.board = next

	if err := s.persister.Save(ctx, next); err != nil {
		logs.Logger.Errorw("Failed to save board", "op", name, "error", err)
		res.SaveErr = err
	}

	for _, sub := range s.subs {
		sub.fn(next.Clone())
	}

	return res
}
