package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/operations"
	"kanbo/internal/kanban/store"
)

func (a *app) listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "Print the board",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.store.Snapshot()
			out := cmd.OutOrStdout()

			if asJSON {
				data, err := json.MarshalIndent(board, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			printBoard(out, board)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the board as JSON")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <column> <content...>",
		Aliases: []string{"a"},
		Short:   "Add a card to the end of a column",
		Example: `  kanbo add "To Do" Write the release notes`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.store.Snapshot()
			colIdx, err := operations.FindColumn(board, args[0])
			if err != nil {
				return err
			}

			content := strings.Join(args[1:], " ")
			res := a.store.AddCard(cmd.Context(), board.Columns[colIdx].ID, content)
			if err := resultError(res); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added: %s %s\n", res.Card.PBIID, res.Card.Content)
			fmt.Fprintf(out, "ID: %s\n", res.Card.ID)
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	var (
		pbi       string
		content   string
		hours     float64
		clearTime bool
		color     string
	)

	cmd := &cobra.Command{
		Use:     "edit <card>",
		Aliases: []string{"e"},
		Short:   "Change fields of a card",
		Long: `Change fields of a card. Only the flags given are changed.
The card may be named by id, id prefix or PBI id.`,
		Example: `  kanbo edit PBI-101 --time 3 --color green.500
  kanbo edit 3f1c --clear-time --color ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.store.Snapshot()
			colIdx, cardIdx, err := operations.FindCardRef(board, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var patch operations.CardPatch
			if flags.Changed("pbi") {
				patch.PBIID = &pbi
			}
			if flags.Changed("content") {
				patch.Content = &content
			}
			if flags.Changed("time") {
				patch.RemainingTime = &hours
			}
			if clearTime {
				if patch.RemainingTime != nil {
					return fmt.Errorf("--time and --clear-time cannot be used together")
				}
				patch.ClearRemainingTime = true
			}
			if flags.Changed("color") {
				patch.ColorTag = &color
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change, use --pbi, --content, --time, --clear-time or --color")
			}

			res := a.store.EditCard(cmd.Context(), board.Columns[colIdx].Cards[cardIdx].ID, patch)
			if err := resultError(res); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", formatCard(res.Card))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&pbi, "pbi", "", "Set the PBI id")
	f.StringVar(&content, "content", "", "Set the content")
	f.Float64Var(&hours, "time", 0, "Set the remaining time in hours")
	f.BoolVar(&clearTime, "clear-time", false, "Clear the remaining time")
	f.StringVar(&color, "color", "", `Set the color tag, "" clears it`)
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:     "delete <card>",
		Aliases: []string{"rm", "del"},
		Short:   "Delete a card",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.store.Snapshot()
			colIdx, cardIdx, err := operations.FindCardRef(board, args[0])
			if err != nil {
				return err
			}
			cardID := board.Columns[colIdx].Cards[cardIdx].ID

			if column != "" {
				if colIdx, err = operations.FindColumn(board, column); err != nil {
					return err
				}
			}

			res := a.store.DeleteCard(cmd.Context(), board.Columns[colIdx].ID, cardID)
			if err := resultError(res); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", formatCard(res.Card))
			return nil
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "", "Only delete if the card is in this column")
	return cmd
}

func (a *app) moveCmd() *cobra.Command {
	var (
		to    string
		index int
	)

	cmd := &cobra.Command{
		Use:     "move <card>",
		Aliases: []string{"mv"},
		Short:   "Move a card to a column and position",
		Example: `  kanbo move PBI-101 --to Done
  kanbo move PBI-101 --to "To Do" --index 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.store.Snapshot()
			srcCol, srcIdx, err := operations.FindCardRef(board, args[0])
			if err != nil {
				return err
			}
			dstCol, err := operations.FindColumn(board, to)
			if err != nil {
				return err
			}

			dstIdx := moveTarget(board, srcCol, dstCol, index)
			src := board.Columns[srcCol]
			res := a.store.MoveCard(cmd.Context(), src.ID, srcIdx, board.Columns[dstCol].ID, dstIdx, src.Cards[srcIdx].ID)
			if err := resultError(res); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved: %s -> %s [%d]\n", res.Card.PBIID, board.Columns[dstCol].Title, dstIdx)
			return nil
		},
	}

	cmd.Flags().StringVarP(&to, "to", "t", "", "Destination column (id, id prefix or title)")
	cmd.Flags().IntVarP(&index, "index", "i", -1, "Position in the destination column (default: end)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// moveTarget resolves a requested index; negative means the end of the
// destination column as it will be once the card has left its source
func moveTarget(board models.Board, srcCol, dstCol, index int) int {
	end := len(board.Columns[dstCol].Cards)
	if srcCol == dstCol {
		end--
	}
	if index < 0 || index > end {
		return end
	}
	return index
}

// resultError turns anything but a clean applied result into an error
func resultError(res store.Result) error {
	switch res.Outcome {
	case operations.OutcomeApplied:
		if res.SaveErr != nil {
			return fmt.Errorf("change applied but not saved: %w", res.SaveErr)
		}
		return nil
	case operations.OutcomeUnchanged:
		return fmt.Errorf("nothing changed")
	case operations.OutcomeColumnNotFound:
		return fmt.Errorf("column not found")
	case operations.OutcomeCardNotFound:
		return fmt.Errorf("card not found")
	case operations.OutcomeStaleIndex:
		return fmt.Errorf("card is no longer at that position, try again")
	case operations.OutcomeInvalid:
		return fmt.Errorf("invalid value")
	default:
		return fmt.Errorf("not applied: %s", res.Outcome)
	}
}

func printBoard(w io.Writer, board models.Board) {
	for i, col := range board.Columns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)  [%s]\n", col.Title, len(col.Cards), shortID(col.ID))
		if len(col.Cards) == 0 {
			fmt.Fprintln(w, "  (empty)")
			continue
		}
		for _, card := range col.Cards {
			fmt.Fprintf(w, "  %s\n", formatCard(card))
		}
	}
	fmt.Fprintf(w, "\n%d card(s)\n", board.CardCount())
}

func formatCard(card models.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s  %s", shortID(card.ID), card.PBIID, firstLine(card.Content))
	if card.HasRemainingTime() {
		b.WriteString("  " + card.RemainingLabel())
	}
	if card.ColorTag != "" {
		b.WriteString("  (" + models.ColorLabel(card.ColorTag) + ")")
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
