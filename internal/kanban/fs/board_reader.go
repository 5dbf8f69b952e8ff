package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/operations"
)

// ReadBoard reads a board directory written by WriteBoard. Each H2 in board.md
// is a column and each link into cards/ below it is a card, in order. Column
// ids and titles come from the frontmatter when it lists them. Columns or cards
// without an id get a fresh one.
func ReadBoard(dir string) (models.Board, error) {
	return readBoard(dir, operations.NewUUID)
}

func readBoard(dir string, ids operations.IDSource) (models.Board, error) {
	content, err := os.ReadFile(filepath.Join(dir, boardFileName))
	if err != nil {
		return models.Board{}, err
	}

	var fm boardFrontmatter
	fmBytes, body, ok := splitFrontmatter(content)
	if ok {
		if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
			return models.Board{}, fmt.Errorf("invalid board frontmatter: %w", err)
		}
	}

	board := models.Board{Columns: []models.Column{}}

	reader := text.NewReader(body)
	doc := goldmark.DefaultParser().Parse(reader)

	var (
		currentColumn *models.Column
		walkErr       error
	)

	flush := func() {
		if currentColumn != nil {
			board.Columns = append(board.Columns, *currentColumn)
		}
	}

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level != 2 {
				return ast.WalkSkipChildren, nil
			}
			flush()

			var entry columnEntry
			if idx := len(board.Columns); idx < len(fm.Columns) {
				entry = fm.Columns[idx]
			}
			if entry.ID == "" {
				entry.ID = ids()
			}
			title := string(node.Text(body))
			if entry.Title != nil {
				title = *entry.Title
			}
			currentColumn = &models.Column{
				ID:    entry.ID,
				Title: title,
				Cards: []models.Card{},
			}
			return ast.WalkSkipChildren, nil

		case *ast.Link:
			dest := string(node.Destination)
			if currentColumn == nil || !isCardLink(dest) {
				return ast.WalkContinue, nil
			}
			card, err := ReadCard(filepath.Join(dir, dest))
			if err != nil {
				walkErr = fmt.Errorf("error reading %s: %w", dest, err)
				return ast.WalkStop, nil
			}
			currentColumn.Cards = append(currentColumn.Cards, fillCard(card, ids))
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	if walkErr != nil {
		return models.Board{}, walkErr
	}
	flush()

	return board, nil
}

func isCardLink(dest string) bool {
	return strings.HasPrefix(dest, "./"+cardsDirName+"/") || strings.HasPrefix(dest, cardsDirName+"/")
}

func fillCard(card models.Card, ids operations.IDSource) models.Card {
	if card.ID == "" {
		card.ID = ids()
	}
	if card.PBIID == "" {
		card.PBIID = operations.NewPBIID(ids)
	}
	return card
}
