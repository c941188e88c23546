package fetcher

import "sync"

// Region is a text-bearing display element the fetcher writes to
type Region interface {
	SetText(text string)
}

// TextRegion is an in-memory Region safe for concurrent use
type TextRegion struct {
	mu   sync.RWMutex
	text string
}

// NewTextRegion creates a TextRegion holding initial
func NewTextRegion(initial string) *TextRegion {
	return &TextRegion{text: initial}
}

// SetText replaces the region's text
func (r *TextRegion) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
}

// Text returns the region's current text
func (r *TextRegion) Text() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.text
}

// RegionFunc adapts a function to the Region interface
type RegionFunc func(text string)

// SetText calls f(text)
func (f RegionFunc) SetText(text string) {
	f(text)
}
