package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/operations"
)

func sequentialIDs() operations.IDSource {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("abcd%04d", n)
	}
}

func TestWriteReadBoard_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	board := operations.DefaultBoard(sequentialIDs())
	board.Columns[2].Cards = append(board.Columns[2].Cards, models.Card{
		ID:            "feedface-0000",
		PBIID:         "PBI-9 [beta]",
		Content:       "Multi-line\n\n- with a list\n---\nand a rule",
		RemainingTime: models.Hours(0),
	})

	if err := WriteBoard(dir, board); err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}

	got, err := ReadBoard(dir)
	if err != nil {
		t.Fatalf("ReadBoard: %v", err)
	}

	if !reflect.DeepEqual(board, got) {
		t.Errorf("round trip mismatch\nwant: %+v\ngot:  %+v", board, got)
	}
}

func TestWriteReadBoard_KeepsTitlesAndLineEndings(t *testing.T) {
	dir := t.TempDir()
	titles := []string{"To *Do*", "Done #", "a_b_ `c`", "  padded", "two\nlines", ""}

	board := models.Board{}
	for i, title := range titles {
		board.Columns = append(board.Columns, models.Column{
			ID:    fmt.Sprintf("col-%d", i),
			Title: title,
			Cards: []models.Card{},
		})
	}
	board.Columns[0].Cards = append(board.Columns[0].Cards, models.Card{
		ID:      "crlf-card",
		PBIID:   "PBI-1",
		Content: "line1\r\nline2\r\n",
	})

	if err := WriteBoard(dir, board); err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}
	got, err := ReadBoard(dir)
	if err != nil {
		t.Fatalf("ReadBoard: %v", err)
	}

	if !reflect.DeepEqual(board, got) {
		t.Errorf("round trip mismatch\nwant: %+v\ngot:  %+v", board, got)
	}
}

func TestReadBoard_BareColumnIDs(t *testing.T) {
	dir := t.TempDir()
	boardMD := "---\ncolumns:\n    - first-col\n---\n\n## Backlog\n\n## Later\n"
	if err := os.WriteFile(filepath.Join(dir, "board.md"), []byte(boardMD), 0644); err != nil {
		t.Fatal(err)
	}

	board, err := readBoard(dir, sequentialIDs())
	if err != nil {
		t.Fatalf("readBoard: %v", err)
	}
	if len(board.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(board.Columns))
	}
	if board.Columns[0].ID != "first-col" || board.Columns[0].Title != "Backlog" {
		t.Errorf("unexpected first column %+v", board.Columns[0])
	}
	if board.Columns[1].ID != "abcd0001" || board.Columns[1].Title != "Later" {
		t.Errorf("unexpected second column %+v", board.Columns[1])
	}
}

func TestWriteBoard_Layout(t *testing.T) {
	dir := t.TempDir()
	board := operations.DefaultBoard(sequentialIDs())

	if err := WriteBoard(dir, board); err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "board.md"))
	if err != nil {
		t.Fatalf("reading board.md: %v", err)
	}
	s := string(content)

	for _, want := range []string{
		"columns:\n",
		"- id: abcd0001\n",
		"title: To Do\n",
		"# Board\n",
		"## To Do\n",
		"## In Progress\n",
		"## Done\n",
		"[PBI-101: Learn React](./cards/PBI-101_abcd0002.md)",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("board.md missing %q\n%s", want, s)
		}
	}

	card, err := os.ReadFile(filepath.Join(dir, "cards", "PBI-101_abcd0002.md"))
	if err != nil {
		t.Fatalf("reading card: %v", err)
	}
	want := "---\nid: abcd0002\npbi_id: PBI-101\nremaining_time: 5\ncolor_tag: blue.500\n---\nLearn React"
	if string(card) != want {
		t.Errorf("card file:\nwant %q\ngot  %q", want, string(card))
	}
}

func TestWriteBoard_RemovesStaleCards(t *testing.T) {
	dir := t.TempDir()
	board := operations.DefaultBoard(sequentialIDs())
	if err := WriteBoard(dir, board); err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}

	board.Columns[0].Cards = board.Columns[0].Cards[1:]
	if err := WriteBoard(dir, board); err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}

	if fileExistsAt(filepath.Join(dir, "cards", "PBI-101_abcd0002.md")) {
		t.Error("expected removed card file to be deleted")
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "cards"))
	if len(entries) != 3 {
		t.Errorf("expected 3 card files, got %d", len(entries))
	}
}

func TestWriteBoard_DuplicateFilenames(t *testing.T) {
	dir := t.TempDir()
	board := models.Board{Columns: []models.Column{{
		ID:    "col",
		Title: "Only",
		Cards: []models.Card{
			{ID: "same-prefix-1", PBIID: "PBI-1", Content: "one"},
			{ID: "same-prefix-2", PBIID: "PBI-1", Content: "two"},
		},
	}}}

	if err := WriteBoard(dir, board); err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}
	got, err := ReadBoard(dir)
	if err != nil {
		t.Fatalf("ReadBoard: %v", err)
	}
	if !reflect.DeepEqual(board, got) {
		t.Errorf("round trip mismatch\nwant: %+v\ngot:  %+v", board, got)
	}
}

func TestReadBoard_HandWritten(t *testing.T) {
	dir := t.TempDir()
	cards := filepath.Join(dir, "cards")
	if err := os.MkdirAll(cards, 0755); err != nil {
		t.Fatal(err)
	}

	boardMD := "# Sprint\n\n## Backlog\n\n[first](./cards/first.md)\n\n[ignored](https://example.com)\n\n## Doing\n\n[second](cards/second.md)\n"
	files := map[string]string{
		filepath.Join(dir, "board.md"):    boardMD,
		filepath.Join(cards, "first.md"):  "Just text, no frontmatter",
		filepath.Join(cards, "second.md"): "---\npbi_id: PBI-42\ncolor_tag: red.500\nremaining_time: 1.5\n---\nSecond card",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	board, err := readBoard(dir, sequentialIDs())
	if err != nil {
		t.Fatalf("readBoard: %v", err)
	}

	if len(board.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(board.Columns))
	}
	if board.Columns[0].Title != "Backlog" || board.Columns[1].Title != "Doing" {
		t.Errorf("unexpected titles %q, %q", board.Columns[0].Title, board.Columns[1].Title)
	}
	if board.Columns[0].ID == "" || board.Columns[1].ID == "" {
		t.Error("expected generated column ids")
	}

	first := board.Columns[0].Cards
	if len(first) != 1 || first[0].Content != "Just text, no frontmatter" {
		t.Fatalf("unexpected backlog cards %+v", first)
	}
	if first[0].ID == "" || !strings.HasPrefix(first[0].PBIID, "PBI-") {
		t.Errorf("expected generated ids, got %+v", first[0])
	}

	second := board.Columns[1].Cards
	if len(second) != 1 {
		t.Fatalf("expected 1 card in Doing, got %d", len(second))
	}
	if second[0].PBIID != "PBI-42" || second[0].ColorTag != "red.500" || second[0].RemainingLabel() != "1.5h" {
		t.Errorf("unexpected card %+v", second[0])
	}
}

func TestReadBoard_MissingCard(t *testing.T) {
	dir := t.TempDir()
	boardMD := "## Backlog\n\n[gone](./cards/gone.md)\n"
	if err := os.WriteFile(filepath.Join(dir, "board.md"), []byte(boardMD), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadBoard(dir); err == nil {
		t.Error("expected error for missing card file")
	}
}

func TestReadBoard_NoBoardFile(t *testing.T) {
	if _, err := ReadBoard(t.TempDir()); err == nil {
		t.Error("expected error")
	}
}

func TestParseCard_NegativeRemainingTime(t *testing.T) {
	if _, err := parseCard([]byte("---\nremaining_time: -2\n---\nx")); err == nil {
		t.Error("expected error for negative remaining_time")
	}
}

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantFM string
		body   string
		ok     bool
	}{
		{"none", "plain body", "", "plain body", false},
		{"unterminated", "---\nid: x\nbody", "", "---\nid: x\nbody", false},
		{"empty block", "---\n---\nbody", "", "body", true},
		{"block", "---\nid: x\n---\nbody\n---\nmore", "id: x\n", "body\n---\nmore", true},
		{"crlf", "---\r\nid: x\r\n---\r\nbody\r\nmore", "id: x\r\n", "body\r\nmore", true},
		{"closing line at end", "---\nid: x\n---", "id: x\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, ok := splitFrontmatter([]byte(tt.input))
			if ok != tt.ok || string(fm) != tt.wantFM || string(body) != tt.body {
				t.Errorf("got (%q, %q, %v), want (%q, %q, %v)", fm, body, ok, tt.wantFM, tt.body, tt.ok)
			}
		})
	}
}

func TestCardFilename(t *testing.T) {
	tests := []struct {
		card models.Card
		want string
	}{
		{models.Card{ID: "3f1c2a9e-1111-2222", PBIID: "PBI-101"}, "PBI-101_3f1c2a9e.md"},
		{models.Card{ID: "ab", PBIID: "PBI 9/x"}, "PBI-9-x_ab.md"},
		{models.Card{ID: "abcdefghij", PBIID: ""}, "card_abcdefgh.md"},
	}

	for _, tt := range tests {
		if got := CardFilename(tt.card); got != tt.want {
			t.Errorf("CardFilename(%+v) = %q, want %q", tt.card, got, tt.want)
		}
	}
}

func TestIsBoardDir(t *testing.T) {
	dir := t.TempDir()
	if IsBoardDir(dir) {
		t.Error("empty dir is not a board dir")
	}
	if err := WriteBoard(dir, operations.DefaultBoard(sequentialIDs())); err != nil {
		t.Fatal(err)
	}
	if !IsBoardDir(dir) {
		t.Error("expected board dir after WriteBoard")
	}
}
