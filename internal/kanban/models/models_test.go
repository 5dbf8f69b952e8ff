package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard() Board {
	return Board{Columns: []Column{
		{ID: "col-a", Title: "To Do", Cards: []Card{
			{ID: "card-1", PBIID: "PBI-1", Content: "first", RemainingTime: Hours(5), ColorTag: "blue.500"},
			{ID: "card-2", PBIID: "PBI-2", Content: "second"},
		}},
		{ID: "col-b", Title: "Done", Cards: []Card{}},
	}}
}

func TestBoardJSON_Layout(t *testing.T) {
	data, err := json.Marshal(sampleBoard())
	require.NoError(t, err)

	expected := `[{"id":"col-a","title":"To Do","cards":[` +
		`{"id":"card-1","pbiId":"PBI-1","content":"first","remainingTime":5,"colorTag":"blue.500"},` +
		`{"id":"card-2","pbiId":"PBI-2","content":"second"}]},` +
		`{"id":"col-b","title":"Done","cards":[]}]`
	assert.JSONEq(t, expected, string(data))
}

func TestBoardJSON_RoundTrip(t *testing.T) {
	original := sampleBoard()
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var loaded Board
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, original, loaded)
}

func TestBoardJSON_ZeroRemainingTimeSurvives(t *testing.T) {
	b := Board{Columns: []Column{{ID: "c", Title: "c", Cards: []Card{{ID: "x", RemainingTime: Hours(0)}}}}}
	data, err := json.Marshal(b)
	require.NoError(t, err)

	var loaded Board
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.NotNil(t, loaded.Columns[0].Cards[0].RemainingTime)
	assert.Equal(t, 0.0, *loaded.Columns[0].Cards[0].RemainingTime)
}

func TestBoardJSON_MissingCardsBecomesEmpty(t *testing.T) {
	var b Board
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"c","title":"Empty"}]`), &b))
	require.Len(t, b.Columns, 1)
	assert.NotNil(t, b.Columns[0].Cards)
	assert.Empty(t, b.Columns[0].Cards)
}

func TestClone_IsIndependent(t *testing.T) {
	original := sampleBoard()
	clone := original.Clone()

	clone.Columns[0].Cards[0].Content = "changed"
	*clone.Columns[0].Cards[0].RemainingTime = 99
	clone.Columns[0].Cards = append(clone.Columns[0].Cards, Card{ID: "card-3"})

	assert.Equal(t, "first", original.Columns[0].Cards[0].Content)
	assert.Equal(t, 5.0, *original.Columns[0].Cards[0].RemainingTime)
	assert.Len(t, original.Columns[0].Cards, 2)
}

func TestFindCard(t *testing.T) {
	b := sampleBoard()

	col, idx := b.FindCard("card-2")
	assert.Equal(t, 0, col)
	assert.Equal(t, 1, idx)

	col, idx = b.FindCard("missing")
	assert.Equal(t, -1, col)
	assert.Equal(t, -1, idx)
}

func TestBoardHelpers(t *testing.T) {
	b := sampleBoard()

	assert.Equal(t, 2, b.CardCount())
	assert.Equal(t, []string{"card-1", "card-2"}, b.AllCardIDs())
	assert.Equal(t, 1, b.GetColumnIndex("col-b"))
	assert.Equal(t, -1, b.GetColumnIndex("nope"))
	assert.Nil(t, b.GetColumn("nope"))
	assert.True(t, b.IsDoneColumn(b.Columns[1].Title))
	assert.True(t, b.IsLastColumn(1))
}

func TestDuplicateCardID(t *testing.T) {
	b := sampleBoard()
	_, dup := b.DuplicateCardID()
	assert.False(t, dup)

	b.Columns[1].Cards = append(b.Columns[1].Cards, b.Columns[0].Cards[0])
	id, dup := b.DuplicateCardID()
	assert.True(t, dup)
	assert.Equal(t, "card-1", id)
}

func TestRemainingLabel(t *testing.T) {
	assert.Equal(t, "", Card{}.RemainingLabel())
	assert.Equal(t, "5h", Card{RemainingTime: Hours(5)}.RemainingLabel())
	assert.Equal(t, "1.5h", Card{RemainingTime: Hours(1.5)}.RemainingLabel())
}

func TestColorLabel(t *testing.T) {
	assert.Equal(t, "Blue", ColorLabel("blue.500"))
	assert.Equal(t, "None", ColorLabel(""))
	assert.Equal(t, "brand.700", ColorLabel("brand.700"))
}
