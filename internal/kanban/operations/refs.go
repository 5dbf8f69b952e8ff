package operations

import (
	"fmt"
	"strings"

	"kanbo/internal/kanban/models"
)

const minPrefixLen = 4

// FindColumn resolves a column reference: exact id, id prefix (at least four
// characters) or case-insensitive title
func FindColumn(board models.Board, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("column reference is empty")
	}

	if i := board.GetColumnIndex(ref); i >= 0 {
		return i, nil
	}

	var matches []int
	for i, col := range board.Columns {
		if strings.EqualFold(col.Title, ref) || hasIDPrefix(col.ID, ref) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return -1, fmt.Errorf("no column found matching: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return -1, fmt.Errorf("multiple columns match '%s', please be more specific", ref)
	}
}

// FindCardRef resolves a card reference: exact id, id prefix (at least four
// characters) or case-insensitive PBI id. Returns column and card indices.
func FindCardRef(board models.Board, ref string) (int, int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, -1, fmt.Errorf("card reference is empty")
	}

	if col, idx := board.FindCard(ref); col >= 0 {
		return col, idx, nil
	}

	type hit struct{ col, idx int }
	var matches []hit
	for i, col := range board.Columns {
		for j, card := range col.Cards {
			if strings.EqualFold(card.PBIID, ref) || hasIDPrefix(card.ID, ref) {
				matches = append(matches, hit{i, j})
			}
		}
	}

	switch len(matches) {
	case 0:
		return -1, -1, fmt.Errorf("no card found matching: %s", ref)
	case 1:
		return matches[0].col, matches[0].idx, nil
	default:
		return -1, -1, fmt.Errorf("multiple cards match '%s', please be more specific", ref)
	}
}

func hasIDPrefix(id, ref string) bool {
	return len(ref) >= minPrefixLen && len(id) >= len(ref) && id[:len(ref)] == ref
}
