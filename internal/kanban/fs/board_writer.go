package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"kanbo/internal/kanban/models"
)

const (
	boardFileName = "board.md"
	cardsDirName  = "cards"
)

type boardFrontmatter struct {
	Columns []columnEntry `yaml:"columns"`
}

// columnEntry is authoritative for a column's id and title. The H2 in the body
// is only a readable copy of the title.
type columnEntry struct {
	ID    string  `yaml:"id"`
	Title *string `yaml:"title,omitempty"`
}

// UnmarshalYAML also accepts a bare scalar, taken as the column id
func (c *columnEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.ID = node.Value
		return nil
	}
	type plain columnEntry
	return node.Decode((*plain)(c))
}

var headingEscaper = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// WriteBoard exports board into dir as board.md plus one file per card under
// cards/. Card files in cards/ that are no longer on the board are removed.
func WriteBoard(dir string, board models.Board) error {
	cardsDir := filepath.Join(dir, cardsDirName)
	if err := os.MkdirAll(cardsDir, 0755); err != nil {
		return fmt.Errorf("error creating %s: %w", cardsDir, err)
	}

	fm := boardFrontmatter{Columns: make([]columnEntry, len(board.Columns))}
	for i, col := range board.Columns {
		title := col.Title
		fm.Columns[i] = columnEntry{ID: col.ID, Title: &title}
	}
	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writeFrontmatter(&buf, yamlBytes)
	buf.WriteString("\n# Board\n\n")

	written := make(map[string]bool)
	for _, column := range board.Columns {
		buf.WriteString("## ")
		buf.WriteString(headingEscaper.Replace(column.Title))
		buf.WriteString("\n\n")

		for _, card := range column.Cards {
			filename := uniqueFilename(CardFilename(card), written)
			written[filename] = true

			if err := WriteCard(card, filepath.Join(cardsDir, filename)); err != nil {
				return fmt.Errorf("error writing card %s: %w", card.ID, err)
			}

			buf.WriteString("[")
			buf.WriteString(linkText(card))
			buf.WriteString("](./cards/")
			buf.WriteString(filename)
			buf.WriteString(")\n\n")
		}
	}

	if err := os.WriteFile(filepath.Join(dir, boardFileName), buf.Bytes(), 0644); err != nil {
		return err
	}

	return removeStaleCards(cardsDir, written)
}

func uniqueFilename(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	base := strings.TrimSuffix(name, ".md")
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d.md", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

var linkEscaper = strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`)

func linkText(card models.Card) string {
	summary := card.Content
	if i := strings.IndexByte(summary, '\n'); i >= 0 {
		summary = summary[:i]
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return linkEscaper.Replace(card.PBIID)
	}
	return linkEscaper.Replace(card.PBIID + ": " + summary)
}

func removeStaleCards(cardsDir string, keep map[string]bool) error {
	entries, err := os.ReadDir(cardsDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || keep[name] {
			continue
		}
		if err := os.Remove(filepath.Join(cardsDir, name)); err != nil {
			return err
		}
	}
	return nil
}
