package models

import "strconv"

// Card is a single work item on the board
type Card struct {
	ID            string   `json:"id"`                      // Opaque, generated at creation, never changes
	PBIID         string   `json:"pbiId"`                   // Display identifier, user-editable
	Content       string   `json:"content"`                 // Visible text
	RemainingTime *float64 `json:"remainingTime,omitempty"` // Hours left (nil = not set)
	ColorTag      string   `json:"colorTag,omitempty"`      // Palette name such as "blue.500" ("" = no tag)
}

// HasRemainingTime returns true if a remaining-time estimate is set
func (c Card) HasRemainingTime() bool {
	return c.RemainingTime != nil
}

// RemainingLabel formats the remaining time as a badge ("5h"), or "" when unset
func (c Card) RemainingLabel() string {
	if c.RemainingTime == nil {
		return ""
	}
	return strconv.FormatFloat(*c.RemainingTime, 'f', -1, 64) + "h"
}

// Clone returns a copy that shares no memory with c
func (c Card) Clone() Card {
	out := c
	if c.RemainingTime != nil {
		v := *c.RemainingTime
		out.RemainingTime = &v
	}
	return out
}

// Hours is a convenience for building optional remaining-time values
func Hours(v float64) *float64 {
	return &v
}

// ColorOption is a selectable color tag
type ColorOption struct {
	Value string
	Label string
}

// ColorOptions lists the color tags the edit form offers, "None" first
var ColorOptions = []ColorOption{
	{Value: "", Label: "None"},
	{Value: "red.500", Label: "Red"},
	{Value: "orange.500", Label: "Orange"},
	{Value: "yellow.500", Label: "Yellow"},
	{Value: "green.500", Label: "Green"},
	{Value: "teal.500", Label: "Teal"},
	{Value: "blue.500", Label: "Blue"},
	{Value: "cyan.500", Label: "Cyan"},
	{Value: "purple.500", Label: "Purple"},
	{Value: "pink.500", Label: "Pink"},
	{Value: "gray.500", Label: "Gray"},
}

// ColorLabel returns the human label for a color tag value, or the value itself
// when it is not part of the palette
func ColorLabel(value string) string {
	for _, opt := range ColorOptions {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
