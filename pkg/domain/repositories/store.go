// Package repositories defines the storage-sink contracts the core
// consumes by reference. The core never depends on a concrete backend; a
// memory-backed implementation ships in
// pkg/infrastructure/repositories/memory for callers that don't have (or
// don't yet need) a real persistence layer.
package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
)

// Store is a generic per-type storage sink. All operations are
// asynchronous and cancelable via ctx. Save is upsert keyed by identifier;
// Load returns all non-soft-deleted items; Delete is a hard delete at the
// storage tier (acceptable since entities carry their own soft-delete
// flag).
type Store[T entities.Identifiable] interface {
	Save(ctx context.Context, item T) error
	SaveAll(ctx context.Context, items []T) error
	Load(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (T, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Clear(ctx context.Context) error
}

// NeedStore, SupplyStore, and ShipmentStore name the three concrete store
// instantiations the application wires together; they exist purely so
// callers can depend on a named type instead of repeating the generic
// instantiation everywhere.
type (
	NeedStore     = Store[*entities.Need]
	SupplyStore   = Store[*entities.Supply]
	ShipmentStore = Store[*entities.Shipment]
)
