package count

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Canonical returns the absolute, cleaned form of path with symlinks resolved.
// Every cache key goes through here so one physical directory has one entry.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return filepath.Clean(resolved), nil
}

// ValidateRoot canonicalizes path and checks that it names a readable directory.
func ValidateRoot(path string) (string, error) {
	canon, err := Canonical(path)
	if err != nil {
		return "", &RootError{Path: path, Err: err}
	}
	info, err := os.Stat(canon)
	if err != nil {
		return "", &RootError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return "", &RootError{Path: path, Err: errNotDirectory}
	}
	return canon, nil
}

// Subdir is one navigable child of a directory.
type Subdir struct {
	Name string
	Path string
}

// ListSubdirs returns the immediate subdirectories of dir, sorted by name
// (case-insensitive). Symlinks to directories are included under their
// canonical path; entries that cannot be resolved are skipped.
func ListSubdirs(dir string) ([]Subdir, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	subdirs := make([]Subdir, 0, len(entries))
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			subdirs = append(subdirs, Subdir{Name: entry.Name(), Path: full})
		case entry.Type()&os.ModeSymlink != 0:
			canon, err := Canonical(full)
			if err != nil {
				continue
			}
			info, err := os.Stat(canon)
			if err != nil || !info.IsDir() {
				continue
			}
			subdirs = append(subdirs, Subdir{Name: entry.Name(), Path: canon})
		}
	}

	sort.SliceStable(subdirs, func(i, j int) bool {
		return strings.ToLower(subdirs[i].Name) < strings.ToLower(subdirs[j].Name)
	})
	return subdirs, nil
}
