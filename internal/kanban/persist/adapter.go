// Package persist maps the board onto a single value of a key-value store.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/operations"
	"kanbo/internal/logs"
	"kanbo/internal/storage"
)

// DefaultKey is the key the board is stored under
const DefaultKey = "kanbanBoardState"

// LoadResult is the board read at start-up
type LoadResult struct {
	Board models.Board
	// Seeded is true when nothing usable was stored and the default board was used
	Seeded bool
}

// Adapter reads and writes the whole board as one JSON value
type Adapter struct {
	kv  storage.KV
	key string
	ids operations.IDSource
}

// Option configures an Adapter
type Option func(*Adapter)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithIDSource sets the id generator used to seed the default board
func WithIDSource(ids operations.IDSource) Option {
	return func(a *Adapter) {
		a.ids = ids
	}
}

// New creates an adapter over kv
func New(kv storage.KV, opts ...Option) *Adapter {
	a := &Adapter{
		kv:  kv,
		key: DefaultKey,
		ids: operations.NewUUID,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the storage key in use
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the stored board verbatim. A missing value, a read error or a
// value that does not parse all fall back to the default board.
func (a *Adapter) Load(ctx context.Context) LoadResult {
	raw, err := a.kv.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logs.Logger.Infow("No saved board, using default", "key", a.key)
		} else {
			logs.Logger.Errorw("Failed to read saved board, using default", "key", a.key, "error", err)
		}
		return a.seed()
	}

	board, err := Decode(raw)
	if err != nil {
		logs.Logger.Errorw("Failed to parse saved board, using default", "key", a.key, "error", err)
		return a.seed()
	}

	if len(board.Columns) == 0 {
		logs.Logger.Warnw("Saved board has no columns", "key", a.key, "hint", "run kanbo reset to restore the default board")
	}

	logs.Logger.Debugw("Loaded board", "key", a.key, "columns", len(board.Columns), "cards", board.CardCount())
	return LoadResult{Board: board}
}

func (a *Adapter) seed() LoadResult {
	return LoadResult{Board: operations.DefaultBoard(a.ids), Seeded: true}
}

// Save writes the whole board under the key
func (a *Adapter) Save(ctx context.Context, board models.Board) error {
	raw, err := Encode(board)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, a.key, raw); err != nil {
		return fmt.Errorf("error saving board: %w", err)
	}
	return nil
}

// Encode serializes a board to its stored form
func Encode(board models.Board) (string, error) {
	data, err := json.Marshal(board)
	if err != nil {
		return "", fmt.Errorf("error encoding board: %w", err)
	}
	return string(data), nil
}

// Decode parses the stored form. Only the JSON shape is checked.
func Decode(raw string) (models.Board, error) {
	var board models.Board
	if err := json.Unmarshal([]byte(raw), &board); err != nil {
		return models.Board{}, fmt.Errorf("error decoding board: %w", err)
	}
	return board, nil
}
