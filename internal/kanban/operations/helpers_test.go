package operations

import (
	"fmt"

	"kanbo/internal/kanban/models"
)

// sequentialIDs returns an IDSource yielding "abcd0001", "abcd0002", ...
func sequentialIDs() IDSource {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("abcd%04d", n)
	}
}

func card(id, content string) models.Card {
	return models.Card{ID: id, PBIID: "PBI-" + id, Content: content}
}

// twoColumnBoard builds X=[A, B], Y=[C]
func twoColumnBoard() models.Board {
	return models.Board{Columns: []models.Column{
		{ID: "X", Title: "Column X", Cards: []models.Card{card("A", "card a"), card("B", "card b")}},
		{ID: "Y", Title: "Column Y", Cards: []models.Card{card("C", "card c")}},
	}}
}

func cardIDs(col models.Column) []string {
	ids := make([]string, len(col.Cards))
	for i, c := range col.Cards {
		ids[i] = c.ID
	}
	return ids
}
