package kanban

import (
	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/operations"
)

// dragState tracks a keyboard drag gesture. The card stays where it is on
// the board until the gesture ends; only the placeholder moves.
type dragState struct {
	card        models.Card
	source      operations.Location
	sourceCol   int
	targetCol   int
	targetIndex int
}

func newDragState(board models.Board, colIndex, cardIndex int) *dragState {
	col := board.Columns[colIndex]
	return &dragState{
		card:        col.Cards[cardIndex].Clone(),
		source:      operations.Location{ColumnID: col.ID, Index: cardIndex},
		sourceCol:   colIndex,
		targetCol:   colIndex,
		targetIndex: cardIndex,
	}
}

// maxIndex is the last position the placeholder can take in a column
func (d *dragState) maxIndex(board models.Board, colIndex int) int {
	n := len(board.Columns[colIndex].Cards)
	if colIndex == d.sourceCol {
		n--
	}
	return n
}

func (d *dragState) moveColumn(board models.Board, delta int) {
	next := d.targetCol + delta
	if next < 0 || next >= len(board.Columns) {
		return
	}
	d.targetCol = next
	d.targetIndex = min(d.targetIndex, d.maxIndex(board, next))
}

func (d *dragState) moveIndex(board models.Board, delta int) {
	next := d.targetIndex + delta
	if next < 0 || next > d.maxIndex(board, d.targetCol) {
		return
	}
	d.targetIndex = next
}

// cardsFor returns a column as it would look if the card were dropped at the
// placeholder
func (d *dragState) cardsFor(board models.Board, colIndex int) []models.Card {
	cards := board.Columns[colIndex].Cards
	out := make([]models.Card, 0, len(cards)+1)
	for _, c := range cards {
		if c.ID != d.card.ID {
			out = append(out, c)
		}
	}
	if colIndex != d.targetCol {
		return out
	}
	at := min(d.targetIndex, len(out))
	out = append(out[:at], append([]models.Card{d.card}, out[at:]...)...)
	return out
}

// drop ends the gesture at the placeholder
func (d *dragState) drop(board models.Board) operations.DropResult {
	return operations.DropResult{
		DraggableID: d.card.ID,
		Source:      d.source,
		Destination: &operations.Location{
			ColumnID: board.Columns[d.targetCol].ID,
			Index:    d.targetIndex,
		},
	}
}

// cancel ends the gesture without a destination
func (d *dragState) cancel() operations.DropResult {
	return operations.DropResult{
		DraggableID: d.card.ID,
		Source:      d.source,
	}
}
