package count

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Status is the counting state of one directory.
type Status int

const (
	Pending Status = iota
	InProgress
	Done
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case InProgress:
		return "in progress"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether a scan has finished, successfully or not.
func (s Status) Terminal() bool { return s == Done || s == Failed }

// Result is the outcome of counting one directory level.
type Result struct {
	Files   int
	Subdirs int
	Err     ErrorKind
}

// Entry is a copy of the cache's state for one path.
type Entry struct {
	Path   string
	Status Status
	Result Result
}

// Stats counts entries per status.
type Stats struct {
	Pending    int
	InProgress int
	Done       int
	Failed     int
}

const cacheShards = 32

type cacheShard struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

// Cache maps canonical directory paths to their counting state for the life
// of the process. Entries are never removed. All methods are safe for
// concurrent use; callers only ever see copies.
type Cache struct {
	shards [cacheShards]cacheShard
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	c := &Cache{}
	for i := range c.shards {
		c.shards[i].entries = make(map[string]*Entry)
	}
	return c
}

func (c *Cache) shard(path string) *cacheShard {
	return &c.shards[xxhash.Sum64String(path)%cacheShards]
}

// GetOrCreate returns the entry for path, creating a Pending one if absent.
func (c *Cache) GetOrCreate(path string) Entry {
	s := c.shard(path)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[path]
	if !ok {
		e = &Entry{Path: path, Status: Pending}
		s.entries[path] = e
	}
	return *e
}

// Get returns the entry for path without creating it.
func (c *Cache) Get(path string) (Entry, bool) {
	s := c.shard(path)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[path]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// MarkInProgress moves path from Pending to InProgress. It returns false when
// the entry is in any other state, so only one caller ever scans a path.
// A missing entry is created first.
func (c *Cache) MarkInProgress(path string) bool {
	s := c.shard(path)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[path]
	if !ok {
		e = &Entry{Path: path, Status: Pending}
		s.entries[path] = e
	}
	if e.Status != Pending {
		return false
	}
	e.Status = InProgress
	return true
}

// Complete records the result of an in-progress scan: Done, or Failed when
// the result carries an error. Entries not InProgress are left untouched.
func (c *Cache) Complete(path string, res Result) bool {
	s := c.shard(path)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[path]
	if !ok || e.Status != InProgress {
		return false
	}
	e.Result = res
	if res.Err != ErrNone {
		e.Status = Failed
	} else {
		e.Status = Done
	}
	return true
}

// Reset returns a finished entry to Pending so it can be scanned again.
// Pending and InProgress entries are not affected.
func (c *Cache) Reset(path string) bool {
	s := c.shard(path)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[path]
	if !ok || !e.Status.Terminal() {
		return false
	}
	e.Status = Pending
	e.Result = Result{}
	return true
}

// Len returns the number of known paths.
func (c *Cache) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Stats returns per-status totals. Shards are visited one at a time, so the
// result is not a single atomic snapshot under concurrent writes.
func (c *Cache) Stats() Stats {
	var st Stats
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		for _, e := range s.entries {
			switch e.Status {
			case Pending:
				st.Pending++
			case InProgress:
				st.InProgress++
			case Done:
				st.Done++
			case Failed:
				st.Failed++
			}
		}
		s.mu.Unlock()
	}
	return st
}
