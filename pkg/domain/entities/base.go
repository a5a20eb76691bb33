// Package entities defines the disaster-relief domain model: needs, supplies,
// shipments, locations, and the allocations produced when matching one
// against the other.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Identifiable is implemented by every entity that can be stored in a
// generic repository keyed by its opaque identifier.
type Identifiable interface {
	GetID() uuid.UUID
}

// Base carries the fields shared by every domain entity: a stable opaque
// identifier, creation/update timestamps, and a soft-delete flag. It is
// embedded by composition, never used for subtype dispatch.
type Base struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Deleted   bool      `json:"deleted"`
}

// NewBase constructs a Base with a fresh identifier and both timestamps set
// to now.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID implements Identifiable.
func (b Base) GetID() uuid.UUID {
	return b.ID
}

// Touch bumps UpdatedAt to now. Called by every successful mutator.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// MarkAsDeleted sets the soft-delete flag. Idempotent: a second call leaves
// Deleted true and still bumps UpdatedAt, matching the "soft deletion is
// idempotent" invariant from the spec.
func (b *Base) MarkAsDeleted() {
	b.Deleted = true
	b.Touch()
}

// IsDeleted reports the soft-delete flag.
func (b Base) IsDeleted() bool {
	return b.Deleted
}
