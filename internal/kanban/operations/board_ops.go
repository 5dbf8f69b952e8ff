package operations

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"kanbo/internal/kanban/models"
)

// IDSource produces fresh opaque identifiers
type IDSource func() string

// NewUUID is the default IDSource
func NewUUID() string {
	return uuid.NewString()
}

// NewPBIID derives a display identifier from a fresh identifier:
// "PBI-" followed by its first four characters upper-cased
func NewPBIID(ids IDSource) string {
	fragment := ids()
	if len(fragment) > 4 {
		fragment = fragment[:4]
	}
	return "PBI-" + strings.ToUpper(fragment)
}

// DefaultBoard returns the seed board used on first run and whenever the
// stored board cannot be read
func DefaultBoard(ids IDSource) models.Board {
	return models.Board{
		Columns: []models.Column{
			{ID: ids(), Title: "To Do", Cards: []models.Card{
				{ID: ids(), PBIID: "PBI-101", Content: "Learn React", RemainingTime: models.Hours(5), ColorTag: "blue.500"},
				{ID: ids(), PBIID: "PBI-102", Content: "Build Kanban Board", RemainingTime: models.Hours(8)},
				{ID: ids(), PBIID: "PBI-103", Content: "Implement Drag and Drop", ColorTag: "purple.500"},
			}},
			{ID: ids(), Title: "In Progress", Cards: []models.Card{
				{ID: ids(), PBIID: "PBI-201", Content: "Set up project", RemainingTime: models.Hours(1), ColorTag: "orange.500"},
			}},
			{ID: ids(), Title: "Done", Cards: []models.Card{}},
		},
	}
}

// CollectColorTags gathers all unique color tags in use, sorted
func CollectColorTags(board models.Board) []string {
	tagSet := make(map[string]bool)
	for _, col := range board.Columns {
		for _, card := range col.Cards {
			if card.ColorTag != "" {
				tagSet[card.ColorTag] = true
			}
		}
	}

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
