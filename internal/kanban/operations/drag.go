package operations

import "kanbo/internal/kanban/models"

// Location is a position within a column
type Location struct {
	ColumnID string
	Index    int
}

// DropResult is the terminal event of a drag gesture. Destination is nil when
// the card was dropped outside any column or the gesture was cancelled.
type DropResult struct {
	DraggableID string
	Source      Location
	Destination *Location
}

// ApplyDrop turns a completed drag gesture into a move. Both affected columns
// are replaced in a single snapshot so the card is never in neither or both.
func ApplyDrop(board models.Board, drop DropResult) (models.Board, Outcome) {
	if drop.Destination == nil {
		return board, OutcomeCancelled
	}

	dst := *drop.Destination
	if dst.ColumnID == drop.Source.ColumnID && dst.Index == drop.Source.Index {
		return board, OutcomeUnchanged
	}

	start := board.GetColumn(drop.Source.ColumnID)
	end := board.GetColumn(dst.ColumnID)
	if start == nil || end == nil {
		return board, OutcomeColumnNotFound
	}
	if start.CardIndex(drop.DraggableID) < 0 {
		return board, OutcomeCardNotFound
	}

	return MoveCard(board, drop.Source.ColumnID, drop.Source.Index, dst.ColumnID, dst.Index, drop.DraggableID)
}
