package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShipmentStatus is a state in the shipment lifecycle (see
// pkg/domain/services/shipment for the transition rules).
type ShipmentStatus int

const (
	Pending ShipmentStatus = iota
	Approved
	InTransit
	AtDistributionCenter
	OutForDelivery
	Delivered
	Cancelled
	Failed
)

func (s ShipmentStatus) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Approved:
		return "Approved"
	case InTransit:
		return "InTransit"
	case AtDistributionCenter:
		return "AtDistributionCenter"
	case OutForDelivery:
		return "OutForDelivery"
	case Delivered:
		return "Delivered"
	case Cancelled:
		return "Cancelled"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether no further transitions are permitted from this
// status.
func (s ShipmentStatus) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Failed
}

// Shipment tracks the physical movement of an allocation from a supply's
// location to a need's location.
type Shipment struct {
	Base

	TrackingCode string
	Status       ShipmentStatus
	Priority     PriorityLevel

	NeedID   *uuid.UUID
	SupplyID *uuid.UUID

	Origin      Location
	Destination Location
	Quantity    int

	ScheduledDispatch *time.Time
	ActualDispatch    *time.Time
	EstimatedArrival  *time.Time
	ActualDelivery    *time.Time

	Carrier   string
	Vehicle   string
	Driver    string
	Recipient string

	Notes           string
	ProofOfDelivery string
}

// NewShipment constructs a Shipment in the initial Pending state with a
// freshly generated tracking code.
func NewShipment(priority PriorityLevel, origin, destination Location, quantity int) (*Shipment, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: shipment quantity must be positive, got %d", ErrInvalidArgument, quantity)
	}
	base := NewBase()
	return &Shipment{
		Base:         base,
		TrackingCode: newTrackingCode(base.CreatedAt, base.ID),
		Status:       Pending,
		Priority:     priority,
		Origin:       origin,
		Destination:  destination,
		Quantity:     quantity,
	}, nil
}

// newTrackingCode builds "DL-<UTC yyyyMMddHHmmss>-<6 upper-hex>" from the
// shipment's creation time and identifier. It is a display code, not a
// uniqueness key: collisions under high creation rates are tolerated (the
// entity's own ID is the uniqueness key).
func newTrackingCode(at time.Time, id uuid.UUID) string {
	stamp := at.UTC().Format("20060102150405")
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	suffix := hex[:6]
	return fmt.Sprintf("DL-%s-%s", stamp, suffix)
}

// IsActive reports whether the shipment has not reached a terminal status.
func (sh *Shipment) IsActive() bool {
	return !sh.Status.IsTerminal()
}

// IsDelayed reports whether an active shipment's estimated arrival has
// already passed.
func (sh *Shipment) IsDelayed(now time.Time) bool {
	return sh.IsActive() && sh.EstimatedArrival != nil && sh.EstimatedArrival.Before(now)
}
