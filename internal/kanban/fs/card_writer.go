package fs

import (
	"bytes"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"kanbo/internal/kanban/models"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9-]+`)

// CardFilename returns the file name a card is exported to: <pbi>_<id8>.md
func CardFilename(card models.Card) string {
	pbi := unsafeNameChars.ReplaceAllString(card.PBIID, "-")
	if pbi == "" || pbi == "-" {
		pbi = "card"
	}
	id := unsafeNameChars.ReplaceAllString(card.ID, "")
	if len(id) > 8 {
		id = id[:8]
	}
	return pbi + "_" + id + ".md"
}

// WriteCard writes a card to a markdown file with frontmatter
func WriteCard(card models.Card, path string) error {
	var buf bytes.Buffer

	yamlBytes, err := yaml.Marshal(cardFrontmatter{
		ID:            card.ID,
		PBIID:         card.PBIID,
		RemainingTime: card.RemainingTime,
		ColorTag:      card.ColorTag,
	})
	if err != nil {
		return err
	}

	writeFrontmatter(&buf, yamlBytes)
	buf.WriteString(card.Content)

	return os.WriteFile(path, buf.Bytes(), 0644)
}
