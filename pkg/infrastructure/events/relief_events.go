package events

import (
	"github.com/reliefgrid/coordinator/pkg/domain/entities"
)

// NewNeedCreatedEntry builds the audit entry for a newly registered need.
func NewNeedCreatedEntry(n *entities.Need) Entry {
	return NewEntry(NeedCreated, "need registered: "+n.Title).
		WithEntity(n.ID, "Need").
		withMetadataOrEmpty(map[string]any{
			"category": n.Category,
			"priority": n.Priority.String(),
			"required": n.Required,
		})
}

// NewNeedFulfilledEntry builds the audit entry for a need reaching full
// fulfillment.
func NewNeedFulfilledEntry(n *entities.Need) Entry {
	return NewEntry(NeedFulfilled, "need fully fulfilled: "+n.Title).
		WithEntity(n.ID, "Need").
		withMetadataOrEmpty(map[string]any{
			"required": n.Required,
		})
}

// NewSupplyCreatedEntry builds the audit entry for newly registered stock.
func NewSupplyCreatedEntry(s *entities.Supply) Entry {
	return NewEntry(SupplyCreated, "supply registered: "+s.Name).
		WithEntity(s.ID, "Supply").
		withMetadataOrEmpty(map[string]any{
			"category":  s.Category,
			"available": s.Available,
		})
}

// NewSupplyDepletedEntry builds the audit entry for a supply whose
// allocatable stock reached zero during a matching pass.
func NewSupplyDepletedEntry(s *entities.Supply) Entry {
	return NewEntry(SupplyDepleted, "supply exhausted: "+s.Name).
		WithEntity(s.ID, "Supply")
}

// NewMatchMadeEntry builds the audit entry for one need's allocation
// outcome within a matching pass.
func NewMatchMadeEntry(a entities.Allocation) Entry {
	return NewEntry(MatchMade, "match recorded").
		WithEntity(a.NeedID, "Need").
		withMetadataOrEmpty(map[string]any{
			"quantity":           a.TotalQuantity(),
			"fulfillmentPercent": a.FulfillmentPercent,
			"supplyCount":        len(a.Supplies),
		})
}

// NewMatchFailedEntry builds the audit entry for a matching pass that
// rolled back after a mid-pass failure.
func NewMatchFailedEntry(reason string) Entry {
	return NewEntry(MatchFailed, "matching pass aborted: "+reason)
}

// NewShipmentCreatedEntry builds the audit entry for a newly created
// shipment.
func NewShipmentCreatedEntry(sh *entities.Shipment) Entry {
	return NewEntry(ShipmentCreated, "shipment created").
		WithEntity(sh.ID, "Shipment")
}

// NewShipmentStatusEntry builds the audit entry for a shipment status
// transition: ShipmentDelivered for Delivered, ShipmentCancelled for
// Cancelled or Failed, and ShipmentDispatched for every other status.
func NewShipmentStatusEntry(sh *entities.Shipment) Entry {
	kind := ShipmentDispatched
	switch sh.Status {
	case entities.Delivered:
		kind = ShipmentDelivered
	case entities.Cancelled, entities.Failed:
		kind = ShipmentCancelled
	}
	return NewEntry(kind, "shipment status changed to "+sh.Status.String()).
		WithEntity(sh.ID, "Shipment")
}

// NewPanicModeTriggeredEntry builds the audit entry recorded each time a
// dashboard snapshot finds a non-empty panic set.
func NewPanicModeTriggeredEntry(count int) Entry {
	return NewEntry(PanicModeTriggered, "panic mode triggered").
		withMetadataOrEmpty(map[string]any{"panicNeedCount": count})
}

// withMetadataOrEmpty attaches fields as Metadata, silently dropping the
// attempt if any value isn't one of the permitted shapes (every call site
// above passes only strings, ints, and float64s, so this never actually happens; it's
// here so a future field addition fails safe rather than panicking).
func (e Entry) withMetadataOrEmpty(fields map[string]any) Entry {
	m, err := NewMetadata(fields)
	if err != nil {
		return e
	}
	return e.WithMetadata(m)
}
