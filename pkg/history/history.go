// Package history keeps a bounded in-memory record of recently served
// fortunes for the admin endpoint. Entries are lost when the process
// restarts; the ring is an operational convenience, not persistence.
package history

import (
	"container/list"
	"sync"
	"time"
)

// Entry is one served fortune as remembered by the ring.
type Entry struct {
	Content  string    `json:"content"`
	Mode     string    `json:"mode"`
	ServedAt time.Time `json:"served_at"`
}

// Ring is a fixed-capacity record of recent entries guarded by a single
// mutex. The accept loop records into it; the admin listener reads.
type Ring struct {
	mu      sync.RWMutex
	entries *list.List // front = newest, back = oldest
	maxSize int
}

// New creates a ring holding at most maxSize entries. maxSize must be
// positive.
func New(maxSize int) *Ring {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Ring{
		entries: list.New(),
		maxSize: maxSize,
	}
}

// Record adds an entry, evicting the oldest when the ring is full.
func (r *Ring) Record(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries.PushFront(e)
	for r.entries.Len() > r.maxSize {
		r.entries.Remove(r.entries.Back())
	}
}

// Recent returns up to limit entries, newest first. A non-positive
// limit returns everything in the ring.
func (r *Ring) Recent(limit int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > r.entries.Len() {
		limit = r.entries.Len()
	}

	out := make([]Entry, 0, limit)
	for e := r.entries.Front(); e != nil && len(out) < limit; e = e.Next() {
		out = append(out, e.Value.(Entry))
	}
	return out
}

// Len returns the number of entries currently held.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries.Len()
}
