package models

import "encoding/json"

// MarshalJSON writes the board as the bare column array
func (b Board) MarshalJSON() ([]byte, error) {
	cols := b.Columns
	if cols == nil {
		cols = []Column{}
	}
	return json.Marshal(cols)
}

// UnmarshalJSON reads the bare column array. Shapes are not validated.
func (b *Board) UnmarshalJSON(data []byte) error {
	var cols []Column
	if err := json.Unmarshal(data, &cols); err != nil {
		return err
	}
	for i := range cols {
		if cols[i].Cards == nil {
			cols[i].Cards = []Card{}
		}
	}
	b.Columns = cols
	return nil
}
