package operations

import (
	"math"
	"strings"

	"kanbo/internal/kanban/models"
)

// CardPatch holds the fields an edit may set. Nil fields are left untouched.
type CardPatch struct {
	PBIID              *string
	Content            *string
	RemainingTime      *float64
	ClearRemainingTime bool
	ColorTag           *string // "" clears the tag
}

// IsEmpty returns true if the patch would not touch any field
func (p CardPatch) IsEmpty() bool {
	return p.PBIID == nil && p.Content == nil && p.RemainingTime == nil && !p.ClearRemainingTime && p.ColorTag == nil
}

// AddCard appends a new card with the given content to the end of a column.
// Blank content is rejected.
func AddCard(board models.Board, columnID, content string, ids IDSource) (models.Board, models.Card, Outcome) {
	colIndex := board.GetColumnIndex(columnID)
	if colIndex < 0 {
		return board, models.Card{}, OutcomeColumnNotFound
	}
	if strings.TrimSpace(content) == "" {
		return board, models.Card{}, OutcomeInvalid
	}

	card := models.Card{
		ID:      ids(),
		PBIID:   NewPBIID(ids),
		Content: content,
	}

	next := board.Clone()
	col := &next.Columns[colIndex]
	col.Cards = append(col.Cards, card)

	return next, card.Clone(), OutcomeApplied
}

// DeleteCard removes a card from the named column
func DeleteCard(board models.Board, columnID, cardID string) (models.Board, models.Card, Outcome) {
	colIndex := board.GetColumnIndex(columnID)
	if colIndex < 0 {
		return board, models.Card{}, OutcomeColumnNotFound
	}

	cardIndex := board.Columns[colIndex].CardIndex(cardID)
	if cardIndex < 0 {
		return board, models.Card{}, OutcomeCardNotFound
	}

	next := board.Clone()
	col := &next.Columns[colIndex]
	removed := col.Cards[cardIndex]
	col.Cards = append(col.Cards[:cardIndex], col.Cards[cardIndex+1:]...)

	return next, removed, OutcomeApplied
}

// EditCard merges patch into the card with the given id. The lookup spans the
// whole board, not a single column. Blank content and negative remaining time
// are rejected.
func EditCard(board models.Board, cardID string, patch CardPatch) (models.Board, models.Card, Outcome) {
	colIndex, cardIndex := board.FindCard(cardID)
	if colIndex < 0 {
		return board, models.Card{}, OutcomeCardNotFound
	}

	if patch.RemainingTime != nil {
		v := *patch.RemainingTime
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return board, board.Columns[colIndex].Cards[cardIndex].Clone(), OutcomeInvalid
		}
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return board, board.Columns[colIndex].Cards[cardIndex].Clone(), OutcomeInvalid
	}

	current := board.Columns[colIndex].Cards[cardIndex]
	updated := applyPatch(current, patch)
	if cardsEqual(current, updated) {
		return board, current.Clone(), OutcomeUnchanged
	}

	next := board.Clone()
	next.Columns[colIndex].Cards[cardIndex] = updated

	return next, updated.Clone(), OutcomeApplied
}

func applyPatch(card models.Card, patch CardPatch) models.Card {
	out := card.Clone()
	if patch.PBIID != nil {
		out.PBIID = *patch.PBIID
	}
	if patch.Content != nil {
		out.Content = *patch.Content
	}
	if patch.ClearRemainingTime {
		out.RemainingTime = nil
	}
	if patch.RemainingTime != nil {
		out.RemainingTime = models.Hours(*patch.RemainingTime)
	}
	if patch.ColorTag != nil {
		out.ColorTag = *patch.ColorTag
	}
	return out
}

func cardsEqual(a, b models.Card) bool {
	if a.ID != b.ID || a.PBIID != b.PBIID || a.Content != b.Content || a.ColorTag != b.ColorTag {
		return false
	}
	if (a.RemainingTime == nil) != (b.RemainingTime == nil) {
		return false
	}
	return a.RemainingTime == nil || *a.RemainingTime == *b.RemainingTime
}

// MoveCard removes the card at srcIndex of the source column and inserts it at
// dstIndex of the destination column. The card at srcIndex must be cardID.
// Within one column the insertion index is relative to the shortened sequence.
func MoveCard(board models.Board, srcColumnID string, srcIndex int, dstColumnID string, dstIndex int, cardID string) (models.Board, Outcome) {
	if srcColumnID == dstColumnID && srcIndex == dstIndex {
		return board, OutcomeUnchanged
	}

	srcCol := board.GetColumnIndex(srcColumnID)
	dstCol := board.GetColumnIndex(dstColumnID)
	if srcCol < 0 || dstCol < 0 {
		return board, OutcomeColumnNotFound
	}

	srcCards := board.Columns[srcCol].Cards
	if board.Columns[srcCol].CardIndex(cardID) < 0 {
		return board, OutcomeCardNotFound
	}
	if srcIndex < 0 || srcIndex >= len(srcCards) || srcCards[srcIndex].ID != cardID {
		return board, OutcomeStaleIndex
	}

	next := board.Clone()

	if srcCol == dstCol {
		cards := next.Columns[srcCol].Cards
		card := cards[srcIndex]
		cards = removeAt(cards, srcIndex)
		at := clampIndex(dstIndex, len(cards))
		if at == srcIndex {
			return board, OutcomeUnchanged
		}
		next.Columns[srcCol].Cards = insertAt(cards, at, card)
		return next, OutcomeApplied
	}

	fromCards := next.Columns[srcCol].Cards
	card := fromCards[srcIndex]
	next.Columns[srcCol].Cards = removeAt(fromCards, srcIndex)

	toCards := next.Columns[dstCol].Cards
	next.Columns[dstCol].Cards = insertAt(toCards, clampIndex(dstIndex, len(toCards)), card)

	return next, OutcomeApplied
}

func removeAt(cards []models.Card, i int) []models.Card {
	out := make([]models.Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}

func insertAt(cards []models.Card, i int, card models.Card) []models.Card {
	out := make([]models.Card, 0, len(cards)+1)
	out = append(out, cards[:i]...)
	out = append(out, card)
	return append(out, cards[i:]...)
}

func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}
