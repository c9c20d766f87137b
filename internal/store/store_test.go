package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_EmptyList(t *testing.T) {
	s := NewInMemoryStore()

	books := s.List()
	require.NotNil(t, books)
	assert.Empty(t, books)
	assert.Equal(t, 0, s.Len())
}

func TestInMemoryStore_InsertionOrder(t *testing.T) {
	s := NewInMemoryStore()
	a := Record{Title: "A", Author: "Alpha", Year: 1}
	b := Record{Title: "B", Author: "Beta", Year: 2}
	c := Record{Title: "C", Author: "Gamma", Year: 3}

	s.Add(a)
	s.Add(b)
	s.Add(c)

	assert.Equal(t, []Record{a, b, c}, s.List())
}

func TestInMemoryStore_ListIsIdempotent(t *testing.T) {
	s := NewInMemoryStore()
	s.Add(Record{Title: "Dune", Author: "Herbert", Year: 1965})
	s.Add(Record{Title: "1984", Author: "Orwell", Year: 1949})

	assert.Equal(t, s.List(), s.List())
}

func TestInMemoryStore_ListReturnsCopy(t *testing.T) {
	s := NewInMemoryStore()
	s.Add(Record{Title: "Dune", Author: "Herbert", Year: 1965})

	books := s.List()
	books[0].Title = "changed"

	assert.Equal(t, []Record{{Title: "Dune", Author: "Herbert", Year: 1965}}, s.List())
}

func TestInMemoryStore_RemoveFirstMatch(t *testing.T) {
	s := NewInMemoryStore()
	x1 := Record{Title: "X", Author: "first", Year: 1}
	x2 := Record{Title: "X", Author: "second", Year: 2}
	s.Add(x1)
	s.Add(x2)

	require.True(t, s.Remove("X"))

	books := s.List()
	assert.Equal(t, []Record{x2}, books)
	assert.NotContains(t, books, x1)
}

func TestInMemoryStore_RemoveNotFound(t *testing.T) {
	s := NewInMemoryStore()
	s.Add(Record{Title: "Dune", Author: "Herbert", Year: 1965})
	before := s.List()

	assert.False(t, s.Remove("nonexistent"))
	assert.False(t, s.Remove("dune"), "title match is case-sensitive")
	assert.Equal(t, before, s.List())
}

func TestInMemoryStore_AddRemoveRoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	s.Add(Record{Title: "Dune", Author: "Herbert", Year: 1965})
	before := s.List()

	r := Record{Title: "1984", Author: "Orwell", Year: 1949}
	s.Add(r)
	require.True(t, s.Remove(r.Title))

	assert.Equal(t, before, s.List())
}

func TestRecord_String(t *testing.T) {
	r := Record{Title: "Dune", Author: "Herbert", Year: 1965}
	assert.Equal(t, "Title: Dune, Author: Herbert, Year: 1965", r.String())
}

// TestInMemoryStore_Concurrency is meant to be run with -race.
func TestInMemoryStore_Concurrency(t *testing.T) {
	s := NewInMemoryStore()
	var wg sync.WaitGroup
	numGoroutines := 50
	numOperations := 200

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				title := fmt.Sprintf("book_%d_%d", id, j)
				s.Add(Record{Title: title})
				if j%2 == 0 {
					s.Remove(title)
				} else {
					s.List()
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, numGoroutines*numOperations/2, s.Len())
}
