package entities

import (
	"time"

	"github.com/google/uuid"
)

// SupplyAllocation records one supply's contribution toward a need during a
// matching pass: how much was taken, at what match score, and whether the
// supply was left with zero allocatable stock afterward.
type SupplyAllocation struct {
	SupplyID  uuid.UUID `json:"supplyId"`
	Quantity  int       `json:"quantity"`
	Score     float64   `json:"score"`
	Exhausted bool      `json:"exhausted"`
}

// Allocation is the output of a matching pass for a single need: which
// supplies contributed, the resulting fulfillment percentage, and when the
// allocation happened.
type Allocation struct {
	NeedID             uuid.UUID          `json:"needId"`
	Supplies           []SupplyAllocation `json:"supplies"`
	AllocatedAt        time.Time          `json:"allocatedAt"`
	FulfillmentPercent float64            `json:"fulfillmentPercent"`
}

// TotalQuantity sums the quantities across every contributing supply.
func (a Allocation) TotalQuantity() int {
	total := 0
	for _, s := range a.Supplies {
		total += s.Quantity
	}
	return total
}
