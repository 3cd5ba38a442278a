package selection

import (
	"sync"

	"github.com/thenoetrevino/labelpick/internal/models"
)

// Change is delivered to subscribers whenever the selection is replaced
type Change struct {
	Selection Selection
	Ready     bool
}

// Store owns the options and the current selection of one widget.
// It is not ready until Load is called with the fetched catalog.
type Store struct {
	mu        sync.RWMutex
	options   []models.Option
	selection Selection
	ready     bool

	subs   map[int]func(Change)
	nextID int
}

// NewStore creates an empty, not-ready store
func NewStore() *Store {
	return &Store{
		subs: make(map[int]func(Change)),
	}
}

// Load installs the catalog options and the initial selection and marks the
// store ready. Subscribers are not notified: the initial selection is what
// the server already has.
func (s *Store) Load(options []models.Option, initial Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = options
	s.selection = initial
	s.ready = true
}

// Ready reports whether the catalog has been loaded
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Options returns the catalog options
func (s *Store) Options() []models.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options
}

// Selection returns a copy of the current selection
func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Selection, len(s.selection))
	copy(out, s.selection)
	return out
}

// SelectedIDs returns the ids of the current selection, or
// models.ErrNotReady before the catalog has been loaded.
func (s *Store) SelectedIDs() ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, models.ErrNotReady
	}
	return s.selection.IDs(), nil
}

// Replace swaps the whole selection and notifies subscribers.
func (s *Store) Replace(sel Selection) {
	s.mu.Lock()
	s.selection = sel
	change := Change{Selection: append(Selection(nil), sel...), Ready: s.ready}
	subs := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(change)
	}
}

// Toggle adds the option when absent and removes it when present.
// Returns the new selection.
func (s *Store) Toggle(opt models.Option) Selection {
	cur := s.Selection()
	var next Selection
	if cur.Contains(opt.Value) {
		next = cur.Without(opt.Value)
	} else {
		o := opt
		next = append(cur, &o)
	}
	s.Replace(next)
	return next
}

// RemoveLast drops the last selected entry. Returns false when empty.
func (s *Store) RemoveLast() bool {
	cur := s.Selection()
	if len(cur) == 0 {
		return false
	}
	s.Replace(cur[:len(cur)-1])
	return true
}

// Clear empties the selection
func (s *Store) Clear() {
	s.Replace(Selection{})
}

// Subscribe registers fn for selection changes. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
