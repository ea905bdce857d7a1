// Package nav implements the directory navigation state machine: the
// current frame, the breadcrumb stack and the transitions driven by user
// input and scan completions. It is owned by a single goroutine and holds
// no locks.
package nav

import (
	"github.com/tw93/dircount/internal/count"
)

// Cache is the read/reset side of the count cache.
type Cache interface {
	GetOrCreate(path string) count.Entry
	Get(path string) (count.Entry, bool)
	Reset(path string) bool
}

// Scheduler accepts scan requests.
type Scheduler interface {
	RequestScan(path string) bool
}

// Lister enumerates the navigable subdirectories of a directory.
type Lister func(dir string) ([]count.Subdir, error)

// Option configures a Navigator.
type Option func(*Navigator)

// WithLister replaces count.ListSubdirs.
func WithLister(l Lister) Option {
	return func(n *Navigator) { n.list = l }
}

// WithSort sets the initial sort mode.
func WithSort(m SortMode) Option {
	return func(n *Navigator) { n.sort = m }
}

// Navigator tracks the current frame and the frames above it.
type Navigator struct {
	root  string
	cache Cache
	sched Scheduler
	list  Lister
	sort  SortMode

	frame Frame
	stack []Frame
}

// New builds the initial frame for root and requests scans for its children.
// root must already be canonical. An error is returned only when root itself
// cannot be listed.
func New(root string, cache Cache, sched Scheduler, opts ...Option) (*Navigator, error) {
	n := &Navigator{
		root:  root,
		cache: cache,
		sched: sched,
		list:  count.ListSubdirs,
	}
	for _, opt := range opts {
		opt(n)
	}

	frame, err := n.load(root)
	if err != nil {
		return nil, &count.RootError{Path: root, Err: err}
	}
	n.frame = frame
	return n, nil
}

// load lists dir and builds a frame whose child statuses come from the cache.
// Pending children (and dir itself) are handed to the scheduler. A listing
// error is returned alongside a usable empty frame.
func (n *Navigator) load(dir string) (Frame, error) {
	frame := Frame{Dir: dir, Selected: -1}

	subdirs, err := n.list(dir)
	if err != nil {
		frame.Err = count.Classify(err)
	}
	frame.Children = make([]ChildView, 0, len(subdirs))
	for _, sd := range subdirs {
		frame.Children = append(frame.Children, ChildView{Path: sd.Path, Name: sd.Name})
	}

	n.request(dir)
	for i := range frame.Children {
		n.request(frame.Children[i].Path)
	}
	n.sync(&frame)
	// Selected is still -1, so reorder lands on the first child.
	frame.reorder(n.sort)
	return frame, err
}

// request schedules path only when the cache reports it Pending, so cache
// hits never reach the scheduler.
func (n *Navigator) request(path string) {
	if e := n.cache.GetOrCreate(path); e.Status == count.Pending {
		n.sched.RequestScan(path)
	}
}

// sync copies the current cache state into every view of frame.
func (n *Navigator) sync(frame *Frame) {
	if e, ok := n.cache.Get(frame.Dir); ok {
		frame.DirStatus, frame.DirResult = e.Status, e.Result
	}
	for i := range frame.Children {
		if e, ok := n.cache.Get(frame.Children[i].Path); ok {
			frame.Children[i].Status = e.Status
			frame.Children[i].Result = e.Result
		}
	}
}

// MoveSelection moves the selection by delta, clamped to the children.
func (n *Navigator) MoveSelection(delta int) {
	if len(n.frame.Children) == 0 {
		n.frame.Selected = -1
		return
	}
	n.frame.Selected += delta
	n.frame.clamp()
}

// Select sets the selection to index. Out-of-range indexes are rejected.
func (n *Navigator) Select(index int) bool {
	if index < 0 || index >= len(n.frame.Children) {
		return false
	}
	n.frame.Selected = index
	return true
}

// Enter descends into the selected child. It is a no-op without a selection.
func (n *Navigator) Enter() bool {
	child, ok := n.selected()
	if !ok {
		return false
	}
	// A listing failure still enters; the frame carries the error kind.
	frame, _ := n.load(child.Path)
	n.stack = append(n.stack, n.frame)
	n.frame = frame
	return true
}

// Back returns to the parent frame. It is a no-op at the root.
func (n *Navigator) Back() bool {
	if len(n.stack) == 0 {
		return false
	}
	n.frame = n.stack[len(n.stack)-1]
	n.stack[len(n.stack)-1] = Frame{}
	n.stack = n.stack[:len(n.stack)-1]
	n.revive()
	return true
}

// BackTo pops frames until depth levels remain below the root.
func (n *Navigator) BackTo(depth int) bool {
	if depth < 0 || depth >= len(n.stack) {
		return false
	}
	n.frame = n.stack[depth]
	for i := depth; i < len(n.stack); i++ {
		n.stack[i] = Frame{}
	}
	n.stack = n.stack[:depth]
	n.revive()
	return true
}

// Home returns to the root frame.
func (n *Navigator) Home() bool { return n.BackTo(0) }

// revive refreshes a restored frame: completions that landed while it was
// hidden were dropped, and anything reset meanwhile needs a new request.
func (n *Navigator) revive() {
	n.request(n.frame.Dir)
	for i := range n.frame.Children {
		n.request(n.frame.Children[i].Path)
	}
	n.sync(&n.frame)
	n.frame.reorder(n.sort)
}

// Refresh discards the cached counts of the current directory and its
// children, re-lists it and requests fresh scans. Entries still being
// counted are left alone and keep their pending scan.
func (n *Navigator) Refresh() {
	keep := n.frame.selectedName()
	n.cache.Reset(n.frame.Dir)
	for _, c := range n.frame.Children {
		n.cache.Reset(c.Path)
	}

	frame, _ := n.load(n.frame.Dir)
	if i := frame.indexOfName(keep); i >= 0 {
		frame.Selected = i
	} else if n.frame.Selected >= 0 {
		frame.Selected = n.frame.Selected
	}
	frame.clamp()
	n.frame = frame
}

// ScanCompleted applies a finished scan to the current frame. It returns
// false when path is not visible; the cache still holds the result.
// Every view of path is updated, including symlinked siblings and a link
// back to the current directory.
func (n *Navigator) ScanCompleted(path string) bool {
	if !n.Visible(path) {
		return false
	}
	e, ok := n.cache.Get(path)
	if !ok {
		return false
	}

	if path == n.frame.Dir {
		n.frame.DirStatus, n.frame.DirResult = e.Status, e.Result
	}
	updated := false
	for i := range n.frame.Children {
		if n.frame.Children[i].Path != path {
			continue
		}
		n.frame.Children[i].Status = e.Status
		n.frame.Children[i].Result = e.Result
		updated = true
	}
	if updated && n.sort == SortByCount {
		n.frame.reorder(n.sort)
	}
	return true
}

// ToggleSort switches between name and count order.
func (n *Navigator) ToggleSort() SortMode {
	if n.sort == SortByName {
		n.sort = SortByCount
	} else {
		n.sort = SortByName
	}
	n.frame.reorder(n.sort)
	return n.sort
}

// Visible reports whether path is the current directory or one of its children.
func (n *Navigator) Visible(path string) bool {
	return path == n.frame.Dir || n.frame.contains(path)
}

func (n *Navigator) selected() (ChildView, bool) {
	if n.frame.Selected < 0 || n.frame.Selected >= len(n.frame.Children) {
		return ChildView{}, false
	}
	return n.frame.Children[n.frame.Selected], true
}

// Snapshot returns a copy of the current state.
func (n *Navigator) Snapshot() Snapshot {
	crumbs := make([]string, 0, len(n.stack)+1)
	for _, f := range n.stack {
		crumbs = append(crumbs, f.Dir)
	}
	crumbs = append(crumbs, n.frame.Dir)

	children := make([]ChildView, len(n.frame.Children))
	copy(children, n.frame.Children)

	snap := Snapshot{
		Root:        n.root,
		Dir:         n.frame.Dir,
		Breadcrumbs: crumbs,
		Children:    children,
		Selected:    n.frame.Selected,
		DirStatus:   n.frame.DirStatus,
		DirResult:   n.frame.DirResult,
		Err:         n.frame.Err,
		Sort:        n.sort,
	}
	for _, c := range children {
		if c.Counted() {
			snap.TotalFiles += c.Result.Files
		}
		if !c.Status.Terminal() {
			snap.Counting++
		}
	}
	return snap
}
