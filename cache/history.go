// Package cache holds bounded in-memory stores backed by golang-lru.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// History remembers the most recent input lines in the order they were added.
// Once full, adding a line evicts the oldest one.
type History struct {
	cache *lru.Cache[uint64, string]
	mu    sync.Mutex
	seq   uint64
}

// NewHistory creates a history holding at most size lines.
func NewHistory(size int) (*History, error) {
	c, err := lru.New[uint64, string](size)
	if err != nil {
		return nil, err
	}
	return &History{cache: c}, nil
}

// Add appends line.
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	h.cache.Add(h.seq, line)
}

// Lines returns the remembered lines, oldest first.
func (h *History) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	keys := h.cache.Keys()
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := h.cache.Peek(k); ok {
			lines = append(lines, v)
		}
	}
	return lines
}

// Len returns the number of remembered lines.
func (h *History) Len() int {
	return h.cache.Len()
}

// Purge forgets everything.
func (h *History) Purge() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache.Purge()
}
