package fs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"kanbo/internal/kanban/models"
)

type cardFrontmatter struct {
	ID            string   `yaml:"id"`
	PBIID         string   `yaml:"pbi_id"`
	RemainingTime *float64 `yaml:"remaining_time,omitempty"`
	ColorTag      string   `yaml:"color_tag,omitempty"`
}

// ReadCard reads a card file. Everything after the frontmatter is the content.
// A file without frontmatter becomes a card with no id, which ReadBoard fills in.
func ReadCard(cardPath string) (models.Card, error) {
	content, err := os.ReadFile(cardPath)
	if err != nil {
		return models.Card{}, err
	}
	return parseCard(content)
}

func parseCard(content []byte) (models.Card, error) {
	fmBytes, body, ok := splitFrontmatter(content)
	if !ok {
		return models.Card{Content: string(body)}, nil
	}

	var fm cardFrontmatter
	if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
		return models.Card{}, fmt.Errorf("invalid card frontmatter: %w", err)
	}
	if fm.RemainingTime != nil && *fm.RemainingTime < 0 {
		return models.Card{}, fmt.Errorf("invalid remaining_time %v", *fm.RemainingTime)
	}

	return models.Card{
		ID:            fm.ID,
		PBIID:         fm.PBIID,
		Content:       string(body),
		RemainingTime: fm.RemainingTime,
		ColorTag:      fm.ColorTag,
	}, nil
}
