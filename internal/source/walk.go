package source

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// Extension marks the files cards are read from.
const Extension = ".md"

// File is a markdown file found under a root directory.
type File struct {
	Path    string
	Name    string
	ModTime time.Time
}

// Files returns every markdown file below root in lexical order. Hidden
// files and directories are skipped, as are entries that cannot be read.
func Files(root string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("skip unreadable path", "path", path, "error", err)
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), Extension) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			slog.Warn("skip unreadable file", "path", path, "error", err)
			return nil
		}
		files = append(files, File{Path: path, Name: d.Name(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
