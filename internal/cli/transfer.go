package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kanbo/internal/kanban/fs"
	"kanbo/internal/kanban/models"
	"kanbo/internal/kanban/operations"
	"kanbo/internal/kanban/persist"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func (a *app) exportCmd() *cobra.Command {
	var (
		format string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as JSON or as a markdown directory",
		Long: `Export the board. JSON goes to stdout in the stored layout.
Markdown writes board.md and one file per card under cards/ in --dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.store.Snapshot()

			switch strings.ToLower(format) {
			case formatJSON:
				data, err := json.MarshalIndent(board, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			case formatMarkdown, "md":
				if err := fs.WriteBoard(dir, board); err != nil {
					return fmt.Errorf("error exporting board: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d card(s) to %s\n", board.CardCount(), dir)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want json or markdown)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Export format: json or markdown")
	cmd.Flags().StringVar(&dir, "dir", "kanbo-board", "Target directory for markdown export")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file-or-dir>",
		Short: "Replace the board with an exported one",
		Long: `Replace the board with a JSON file written by "kanbo export" (or the raw
stored value), or with a markdown directory written by "kanbo export -f markdown".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := readImport(args[0])
			if err != nil {
				return err
			}

			res := a.store.Replace(cmd.Context(), board)
			if err := resultError(res); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d column(s), %d card(s)\n", len(board.Columns), board.CardCount())
			return nil
		},
	}
}

func readImport(path string) (models.Board, error) {
	board, err := decodeImport(path)
	if err != nil {
		return models.Board{}, err
	}
	if id, dup := board.DuplicateCardID(); dup {
		return models.Board{}, fmt.Errorf("error importing %s: card id %q appears more than once", path, id)
	}
	return board, nil
}

func decodeImport(path string) (models.Board, error) {
	if fs.IsBoardDir(path) {
		return fs.ReadBoard(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Board{}, fmt.Errorf("error reading %s: %w", path, err)
	}
	return persist.Decode(string(data))
}

func (a *app) resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the board with the default board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Replace the whole board with the default board? [y/N]: ") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			res := a.store.Replace(cmd.Context(), operations.DefaultBoard(operations.NewUUID))
			if err := resultError(res); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Board reset.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

func promptConfirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)

	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.TrimSpace(response)

	return response == "y" || response == "Y"
}
