package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDrop(t *testing.T) {
	tests := []struct {
		name     string
		drop     DropResult
		expected Outcome
		x, y     []string
	}{
		{
			name:     "cancelled gesture",
			drop:     DropResult{DraggableID: "A", Source: Location{"X", 0}},
			expected: OutcomeCancelled,
			x:        []string{"A", "B"}, y: []string{"C"},
		},
		{
			name:     "dropped where it started",
			drop:     DropResult{DraggableID: "A", Source: Location{"X", 0}, Destination: &Location{"X", 0}},
			expected: OutcomeUnchanged,
			x:        []string{"A", "B"}, y: []string{"C"},
		},
		{
			name:     "unknown destination column",
			drop:     DropResult{DraggableID: "A", Source: Location{"X", 0}, Destination: &Location{"Q", 0}},
			expected: OutcomeColumnNotFound,
			x:        []string{"A", "B"}, y: []string{"C"},
		},
		{
			name:     "card not in source column",
			drop:     DropResult{DraggableID: "C", Source: Location{"X", 0}, Destination: &Location{"Y", 0}},
			expected: OutcomeCardNotFound,
			x:        []string{"A", "B"}, y: []string{"C"},
		},
		{
			name:     "reorder within column",
			drop:     DropResult{DraggableID: "B", Source: Location{"X", 1}, Destination: &Location{"X", 0}},
			expected: OutcomeApplied,
			x:        []string{"B", "A"}, y: []string{"C"},
		},
		{
			name:     "move to other column",
			drop:     DropResult{DraggableID: "A", Source: Location{"X", 0}, Destination: &Location{"Y", 1}},
			expected: OutcomeApplied,
			x:        []string{"B"}, y: []string{"C", "A"},
		},
		{
			name:     "move to top of other column",
			drop:     DropResult{DraggableID: "B", Source: Location{"X", 1}, Destination: &Location{"Y", 0}},
			expected: OutcomeApplied,
			x:        []string{"A"}, y: []string{"B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := twoColumnBoard()
			next, outcome := ApplyDrop(board, tt.drop)
			require.Equal(t, tt.expected, outcome)
			assert.Equal(t, tt.x, cardIDs(next.Columns[0]))
			assert.Equal(t, tt.y, cardIDs(next.Columns[1]))
			assert.Equal(t, 3, next.CardCount())
		})
	}
}
