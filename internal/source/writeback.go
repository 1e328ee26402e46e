package source

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lipsanen/tmemo/internal/deck"
)

// ApplyEdits writes each edit into the markdown file its old content came
// from and returns how many were applied. Edits whose card can no longer be
// found are logged and skipped.
func ApplyEdits(root string, edits []deck.Edit) (int, error) {
	if len(edits) == 0 {
		return 0, nil
	}
	files, err := Files(root)
	if err != nil {
		return 0, fmt.Errorf("list files: %w", err)
	}

	applied := 0
	for _, ed := range edits {
		name := ed.Old.SourceFile()
		ok, err := applyEdit(files, name, ed)
		if err != nil {
			return applied, err
		}
		if !ok {
			slog.Warn("edited card not found in source", "file", name, "front", ed.Old.SingleLineFront())
			continue
		}
		applied++
	}
	return applied, nil
}

func applyEdit(files []File, name string, ed deck.Edit) (bool, error) {
	for _, f := range files {
		if f.Name != name {
			continue
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return false, fmt.Errorf("read %s: %w", f.Path, err)
		}
		out, ok := Replace(string(data), f.Name, ed.Old, ed.New)
		if !ok {
			continue
		}
		info, err := os.Stat(f.Path)
		if err != nil {
			return false, fmt.Errorf("stat %s: %w", f.Path, err)
		}
		if err := os.WriteFile(f.Path, []byte(out), info.Mode().Perm()); err != nil {
			return false, fmt.Errorf("write %s: %w", f.Path, err)
		}
		slog.Debug("card written back", "path", f.Path)
		return true, nil
	}
	return false, nil
}
