// Package admin implements the resource admin controller: one CRUD
// workflow applied to four record shapes. A generic Controller binds a
// type descriptor, a persistence gateway and an in-memory Store; the
// package also provides the list-field editor, the filter/search
// projector and the status classifier the admin surface shares across
// resource types.
package admin

import "sync"

// Record is the minimal shape the admin core needs from a resource
// type: a stable identity.
type Record interface {
	RecordID() string
}

// Store is the in-memory, session-authoritative ordered collection of
// one resource type. It reflects confirmed mutations only: the
// controller updates it after the gateway reports success, never before.
//
// All operations leave the collection a consistent snapshot with at
// most one entry per id.
type Store[T Record] struct {
	mu      sync.RWMutex
	records []T
}

// NewStore returns an empty store.
func NewStore[T Record]() *Store[T] {
	return &Store[T]{}
}

// Load replaces the entire collection with the given records. Last
// fetch wins; there are no merge semantics.
func (s *Store[T]) Load(records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]T, len(records))
	copy(s.records, records)
}

// InsertFront prepends a newly created record, preserving the
// most-recent-first ordering contract without a re-fetch. Any stale
// entry with the same id is dropped first.
func (s *Store[T]) InsertFront(rec T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.records)+1)
	out = append(out, rec)
	for _, existing := range s.records {
		if existing.RecordID() != rec.RecordID() {
			out = append(out, existing)
		}
	}
	s.records = out
}

// Replace swaps the record matching id in place. A missing id is a
// silent no-op: the caller already holds the authoritative row, so a
// miss is a non-fatal inconsistency, not an error.
func (s *Store[T]) Replace(id string, rec T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.RecordID() == id {
			s.records[i] = rec
			return
		}
	}
}

// Remove drops the record matching id. Idempotent if already absent.
func (s *Store[T]) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.RecordID() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return
		}
	}
}

// Get returns the record matching id, if present.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, existing := range s.records {
		if existing.RecordID() == id {
			return existing, true
		}
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of the current collection in order. Callers
// may filter or reslice it freely without affecting the store.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records currently held.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
