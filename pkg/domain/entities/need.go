package entities

import (
	"fmt"
	"time"
)

// Need represents an outstanding request for supplies.
//
// Invariant: 0 <= Fulfilled <= Required holds at every observable state
// (transactional mid-states during a matching rollback are the only
// exception, and are never visible outside the transaction).
type Need struct {
	Base

	Title       string
	Description string
	Category    string
	Priority    PriorityLevel

	Required  int
	Fulfilled int
	Unit      string

	Location Location

	Requester string
	Contact   string

	Deadline *time.Time
	Notes    string
}

// NewNeed constructs a Need, validating the fields the spec requires to be
// present and positive. Returns ErrInvalidArgument wrapped with the
// offending field when validation fails.
func NewNeed(title, category string, priority PriorityLevel, required int, unit string, location Location) (*Need, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: need title cannot be empty", ErrInvalidArgument)
	}
	if required <= 0 {
		return nil, fmt.Errorf("%w: need required quantity must be positive, got %d", ErrInvalidArgument, required)
	}
	return &Need{
		Base:     NewBase(),
		Title:    title,
		Category: category,
		Priority: priority,
		Required: required,
		Unit:     unit,
		Location: location,
	}, nil
}

// Remaining is max(0, Required - Fulfilled).
func (n *Need) Remaining() int {
	r := n.Required - n.Fulfilled
	if r < 0 {
		return 0
	}
	return r
}

// IsFulfilled reports whether Fulfilled has reached Required.
func (n *Need) IsFulfilled() bool {
	return n.Fulfilled >= n.Required
}

// FulfillmentPercent is min(100, Fulfilled/Required*100).
func (n *Need) FulfillmentPercent() float64 {
	if n.Required <= 0 {
		return 0
	}
	pct := float64(n.Fulfilled) / float64(n.Required) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// AddFulfilledQuantity clamps Fulfilled at Required and bumps UpdatedAt.
// Returns false (no-op) when q is not positive.
func (n *Need) AddFulfilledQuantity(q int) bool {
	if q <= 0 {
		return false
	}
	n.Fulfilled += q
	if n.Fulfilled > n.Required {
		n.Fulfilled = n.Required
	}
	n.Touch()
	return true
}

// HoursWaited returns hours elapsed since the need was created, as of now.
func (n *Need) HoursWaited(now time.Time) float64 {
	return now.Sub(n.CreatedAt).Hours()
}

// HoursUntilDeadline returns hours until Deadline and true, or (0, false)
// if no deadline is set.
func (n *Need) HoursUntilDeadline(now time.Time) (float64, bool) {
	if n.Deadline == nil {
		return 0, false
	}
	return n.Deadline.Sub(now).Hours(), true
}
