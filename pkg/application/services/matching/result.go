package matching

import "github.com/reliefgrid/coordinator/pkg/domain/entities"

// Result is the outcome of one matching pass.
type Result struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Err         error                `json:"-"`
	Allocations []entities.Allocation `json:"allocations"`
}

// TotalAllocatedQuantity sums TotalQuantity across every allocation.
func (r Result) TotalAllocatedQuantity() int {
	total := 0
	for _, a := range r.Allocations {
		total += a.TotalQuantity()
	}
	return total
}

// FullyFulfilledCount counts allocations whose need reached 100% fulfillment.
func (r Result) FullyFulfilledCount() int {
	n := 0
	for _, a := range r.Allocations {
		if a.FulfillmentPercent >= 100 {
			n++
		}
	}
	return n
}

// PartiallyFulfilledCount counts allocations that moved a need forward
// without fully fulfilling it.
func (r Result) PartiallyFulfilledCount() int {
	n := 0
	for _, a := range r.Allocations {
		if a.FulfillmentPercent > 0 && a.FulfillmentPercent < 100 {
			n++
		}
	}
	return n
}
