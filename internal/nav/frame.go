package nav

import (
	"sort"
	"strings"

	"github.com/tw93/dircount/internal/count"
)

// ChildView is one navigable subdirectory as the display sees it.
type ChildView struct {
	Path   string
	Name   string
	Status count.Status
	Result count.Result
}

// Counted reports whether a file count is available.
func (c ChildView) Counted() bool { return c.Status == count.Done }

// SortMode orders a frame's children.
type SortMode int

const (
	SortByName SortMode = iota
	SortByCount
)

func (m SortMode) String() string {
	if m == SortByCount {
		return "count"
	}
	return "name"
}

// ParseSortMode accepts "name" or "count"; anything else is SortByName.
func ParseSortMode(s string) SortMode {
	if strings.EqualFold(strings.TrimSpace(s), "count") {
		return SortByCount
	}
	return SortByName
}

// Frame is the state of one directory level.
type Frame struct {
	Dir       string
	Children  []ChildView
	Selected  int // -1 when Children is empty
	DirStatus count.Status
	DirResult count.Result
	Err       count.ErrorKind // listing failure of Dir itself
}

func (f *Frame) clamp() {
	switch {
	case len(f.Children) == 0:
		f.Selected = -1
	case f.Selected < 0:
		f.Selected = 0
	case f.Selected >= len(f.Children):
		f.Selected = len(f.Children) - 1
	}
}

// selectedName identifies the selection by entry name. Paths are not unique
// within a frame: a symlinked child shares its target's path.
func (f *Frame) selectedName() string {
	if f.Selected < 0 || f.Selected >= len(f.Children) {
		return ""
	}
	return f.Children[f.Selected].Name
}

func (f *Frame) indexOfName(name string) int {
	for i := range f.Children {
		if f.Children[i].Name == name {
			return i
		}
	}
	return -1
}

func (f *Frame) contains(path string) bool {
	for i := range f.Children {
		if f.Children[i].Path == path {
			return true
		}
	}
	return false
}

// reorder sorts the children and keeps the same child selected.
func (f *Frame) reorder(mode SortMode) {
	keep := f.selectedName()
	sort.SliceStable(f.Children, func(i, j int) bool {
		return less(f.Children[i], f.Children[j], mode)
	})
	if keep != "" {
		f.Selected = f.indexOfName(keep)
	}
	f.clamp()
}

func less(a, b ChildView, mode SortMode) bool {
	if mode == SortByCount {
		ra, rb := rank(a), rank(b)
		if ra != rb {
			return ra < rb
		}
		if ra == 0 && a.Result.Files != b.Result.Files {
			return a.Result.Files > b.Result.Files
		}
	}
	la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if la != lb {
		return la < lb
	}
	return a.Name < b.Name
}

// rank puts counted children first, then those still counting, then failures.
func rank(c ChildView) int {
	switch c.Status {
	case count.Done:
		return 0
	case count.Failed:
		return 2
	default:
		return 1
	}
}

// Snapshot is an immutable copy of the navigator state for rendering.
type Snapshot struct {
	Root        string
	Dir         string
	Breadcrumbs []string // root first, Dir last
	Children    []ChildView
	Selected    int
	DirStatus   count.Status
	DirResult   count.Result
	Err         count.ErrorKind
	Sort        SortMode
	TotalFiles  int // files across counted children
	Counting    int // children without a final result
}

// Depth is the number of levels below the root.
func (s Snapshot) Depth() int { return len(s.Breadcrumbs) - 1 }

// SelectedChild returns the selected child, if any.
func (s Snapshot) SelectedChild() (ChildView, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Children) {
		return ChildView{}, false
	}
	return s.Children[s.Selected], true
}
