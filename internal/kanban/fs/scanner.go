package fs

import (
	"os"
	"path/filepath"
)

// IsBoardDir returns true if path is a directory holding a board.md
func IsBoardDir(path string) bool {
	return fileExistsAt(filepath.Join(path, boardFileName))
}

func fileExistsAt(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
