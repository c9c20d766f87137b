// Package store contains the record model and the storage capability the
// command loop works against, together with its in-memory implementation.
package store

import (
	"fmt"
	"sync"
)

// Record is a single book held by a Store. Title identifies it.
type Record struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// String formats the record the way the shell lists it.
func (r Record) String() string {
	return fmt.Sprintf("Title: %s, Author: %s, Year: %d", r.Title, r.Author, r.Year)
}

// Store is the interface the shell needs to manage records.
// Implementations keep records in insertion order.
type Store interface {
	// Add appends a record. Titles are not checked for collisions.
	Add(r Record)
	// Remove deletes the first record whose title matches exactly and
	// reports whether one was found.
	Remove(title string) bool
	// List returns a copy of the records in insertion order.
	List() []Record
}

// InMemoryStore is a Store backed by a single ordered slice.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore initializes and returns a new empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make([]Record, 0),
	}
}

// Add appends r to the end of the collection.
func (s *InMemoryStore) Add(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

// Remove scans in insertion order and drops only the first match.
func (s *InMemoryStore) Remove(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.Title == title {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a snapshot; mutating it does not affect the store.
func (s *InMemoryStore) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records currently held.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
