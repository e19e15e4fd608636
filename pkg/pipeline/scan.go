package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// item is one scanned image. Size and mtime feed the descriptor cache key so
// a changed file never reuses a stale descriptor.
type item struct {
	path    string
	size    int64
	modTime time.Time
}

// scanImages enumerates the regular files (or symlinks to them) under dir
// whose extension matches exts. The result is in directory order, which
// os.ReadDir guarantees to be sorted by name — this fixes the item indexing
// for the rest of the run.
func scanImages(dir string, exts []string) ([]item, error) {
	extSet := make(map[string]bool, len(exts))
	for _, ext := range exts {
		extSet[ext] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var items []item
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !extSet[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		// Stat (not Lstat) so symlinked images resolve to their target's
		// size and mtime; dangling links are skipped.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		items = append(items, item{path: path, size: info.Size(), modTime: info.ModTime()})
	}
	return items, nil
}
