package models

import "strings"

// Column is a named, ordered bucket of cards
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Board is the ordered set of columns. It serializes as a bare JSON array.
type Board struct {
	Columns []Column
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	out := Board{Columns: make([]Column, len(b.Columns))}
	for i, col := range b.Columns {
		out.Columns[i] = col.Clone()
	}
	return out
}

// Clone returns a deep copy of the column
func (c Column) Clone() Column {
	out := Column{ID: c.ID, Title: c.Title, Cards: make([]Card, len(c.Cards))}
	for i, card := range c.Cards {
		out.Cards[i] = card.Clone()
	}
	return out
}

// GetColumn returns a pointer to the column with the given id
func (b Board) GetColumn(id string) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

// GetColumnIndex returns the index of the column with the given id
func (b Board) GetColumnIndex(id string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

// FindCard returns the column and card indices of the card with the given id,
// or -1, -1
func (b Board) FindCard(id string) (int, int) {
	for i, col := range b.Columns {
		if j := col.CardIndex(id); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

// CardIndex returns the index of the card with the given id in the column
func (c Column) CardIndex(id string) int {
	for i, card := range c.Cards {
		if card.ID == id {
			return i
		}
	}
	return -1
}

// CardCount returns the number of cards across all columns
func (b Board) CardCount() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.Cards)
	}
	return n
}

// AllCardIDs returns every card id in board order
func (b Board) AllCardIDs() []string {
	ids := make([]string, 0, b.CardCount())
	for _, col := range b.Columns {
		for _, card := range col.Cards {
			ids = append(ids, card.ID)
		}
	}
	return ids
}

// DuplicateCardID returns the first card id that appears more than once
func (b Board) DuplicateCardID() (string, bool) {
	seen := make(map[string]bool, b.CardCount())
	for _, id := range b.AllCardIDs() {
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}
	return "", false
}

// IsLastColumn checks if index is the last column
func (b Board) IsLastColumn(index int) bool {
	return index == len(b.Columns)-1
}

// IsDoneColumn checks if a column title is "Done" (case-insensitive)
func (b Board) IsDoneColumn(title string) bool {
	return strings.EqualFold(title, "done")
}
