package count

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Scanner counts the immediate entries of one directory.
type Scanner interface {
	Scan(path string) Result
}

// DirScanner reads one directory level from the local filesystem.
type DirScanner struct{}

// Scan lists path and classifies each entry as a regular file or a
// subdirectory. Symlinks are followed once. Failures are returned in
// Result.Err, never as a Go error.
func (DirScanner) Scan(path string) Result {
	entries, err := os.ReadDir(path)
	if err != nil {
		return Result{Err: Classify(err)}
	}

	var res Result
	for _, entry := range entries {
		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(path, entry.Name()))
			if err != nil {
				// Broken or looping link.
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			res.Subdirs++
		case mode.IsRegular():
			res.Files++
		}
	}
	return res
}
