// Package memory provides a generic in-memory implementation of
// repositories.Store, adapted from the teacher repository's
// slice-plus-index-map item/inventory repositories: a backing slice for
// load-all/iteration order and a map from identifier to slice index for
// O(1) lookups.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
)

// Store is a generic in-memory, mutex-protected implementation of
// repositories.Store[T].
type Store[T entities.Identifiable] struct {
	mu      sync.RWMutex
	items   []T
	indexOf map[uuid.UUID]int
}

// NewStore creates an empty in-memory store with capacity hinted by
// expectedItems (0 is fine; it's only a pre-allocation hint).
func NewStore[T entities.Identifiable](expectedItems int) *Store[T] {
	return &Store[T]{
		items:   make([]T, 0, expectedItems),
		indexOf: make(map[uuid.UUID]int, expectedItems),
	}
}

// Save upserts item keyed by its identifier.
func (s *Store[T]) Save(_ context.Context, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(item)
	return nil
}

// SaveAll upserts every item in items.
func (s *Store[T]) SaveAll(_ context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.saveLocked(item)
	}
	return nil
}

func (s *Store[T]) saveLocked(item T) {
	id := item.GetID()
	if idx, exists := s.indexOf[id]; exists {
		s.items[idx] = item
		return
	}
	s.indexOf[id] = len(s.items)
	s.items = append(s.items, item)
}

// Load returns every item that has not been soft-deleted.
func (s *Store[T]) Load(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if !isDeleted(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Delete hard-removes the item with the given identifier, if present.
// Deleting an absent identifier is not an error.
func (s *Store[T]) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, exists := s.indexOf[id]
	if !exists {
		return nil
	}

	last := len(s.items) - 1
	s.items[idx] = s.items[last]
	s.indexOf[s.items[idx].GetID()] = idx
	s.items = s.items[:last]
	delete(s.indexOf, id)
	return nil
}

// Get returns the item with the given identifier, including soft-deleted
// ones (they remain retrievable by identifier per the spec).
func (s *Store[T]) Get(_ context.Context, id uuid.UUID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	idx, exists := s.indexOf[id]
	if !exists {
		return zero, fmt.Errorf("%w: no item with id %s", entities.ErrInvalidArgument, id)
	}
	return s.items[idx], nil
}

// Exists reports whether an item with the given identifier is present.
func (s *Store[T]) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.indexOf[id]
	return exists, nil
}

// Clear removes every item from the store.
func (s *Store[T]) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.items[:0]
	s.indexOf = make(map[uuid.UUID]int)
	return nil
}

// isDeleted reports whether item carries a Deleted flag set to true. Every
// entities.Identifiable used with this store also embeds entities.Base, so
// this asserts a local IsDeleted() interface at run time rather than adding
// that method to repositories.Store's generic constraint, keeping the
// constraint minimal. Items without IsDeleted are treated as not deleted.
func isDeleted(item entities.Identifiable) bool {
	type deletable interface{ IsDeleted() bool }
	if d, ok := item.(deletable); ok {
		return d.IsDeleted()
	}
	return false
}
