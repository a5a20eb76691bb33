// Package dashboard implements the operational snapshot and panic
// detector: an aggregate read-model over needs, supplies, and shipments,
// plus the rule that flags needs in acute crisis and raises an audit
// event + observer notification for them.
package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
	"github.com/reliefgrid/coordinator/pkg/domain/services/priority"
)

// defaultTopN is how many critical-missing items a snapshot surfaces when
// the caller doesn't request a specific count.
const defaultTopN = 5

// NeedStats summarizes the outstanding-need population.
type NeedStats struct {
	Total              int     `json:"total"`
	Fulfilled          int     `json:"fulfilled"`
	PartiallyFulfilled int     `json:"partiallyFulfilled"`
	Unfulfilled        int     `json:"unfulfilled"`
	PercentMet         float64 `json:"percentMet"`
}

// SupplyStats summarizes the stock population.
type SupplyStats struct {
	Total    int `json:"total"`
	Depleted int `json:"depleted"`
	LowStock int `json:"lowStock"`
}

// ShipmentStats summarizes in-flight shipment activity.
type ShipmentStats struct {
	ActiveTotal    int `json:"activeTotal"`
	Pending        int `json:"pending"`
	InTransit      int `json:"inTransit"`
	DeliveredToday int `json:"deliveredToday"`
}

// CriticalItem is one entry in the top-N critical-missing-items list.
type CriticalItem struct {
	NeedID      uuid.UUID `json:"needId"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Score       float64   `json:"score"`
	HoursWaited float64   `json:"hoursWaited"`
}

// CategoryStat is the per-category fulfillment/allocatable pair.
type CategoryStat struct {
	FulfillmentPercent float64 `json:"fulfillmentPercent"`
	Allocatable        int     `json:"allocatable"`
}

// Snapshot is the full dashboard read-model as of GeneratedAt.
type Snapshot struct {
	GeneratedAt     time.Time               `json:"generatedAt"`
	Needs           NeedStats               `json:"needs"`
	Supplies        SupplyStats             `json:"supplies"`
	Shipments       ShipmentStats           `json:"shipments"`
	CriticalMissing []CriticalItem          `json:"criticalMissing"`
	ByCategory      map[string]CategoryStat `json:"byCategory"`
	PanicNeedIDs    []uuid.UUID             `json:"panicNeedIds"`
}

func aggregateNeeds(needs []*entities.Need) NeedStats {
	var stats NeedStats
	var totalRequired, totalFulfilled int
	for _, n := range needs {
		if n.IsDeleted() {
			continue
		}
		stats.Total++
		totalRequired += n.Required
		totalFulfilled += n.Fulfilled

		switch {
		case n.IsFulfilled():
			stats.Fulfilled++
		case n.Fulfilled > 0:
			stats.PartiallyFulfilled++
		default:
			stats.Unfulfilled++
		}
	}
	if totalRequired > 0 {
		stats.PercentMet = float64(totalFulfilled) / float64(totalRequired) * 100
	}
	return stats
}

func aggregateSupplies(supplies []*entities.Supply) SupplyStats {
	var stats SupplyStats
	for _, s := range supplies {
		if s.IsDeleted() {
			continue
		}
		stats.Total++
		switch {
		case s.Allocatable() == 0:
			stats.Depleted++
		case s.IsBelowMinimum():
			stats.LowStock++
		}
	}
	return stats
}

func aggregateShipments(shipments []*entities.Shipment, now time.Time) ShipmentStats {
	var stats ShipmentStats
	for _, sh := range shipments {
		if sh.IsDeleted() {
			continue
		}
		if sh.IsActive() {
			stats.ActiveTotal++
		}
		switch sh.Status {
		case entities.Pending, entities.Approved:
			stats.Pending++
		case entities.InTransit, entities.AtDistributionCenter, entities.OutForDelivery:
			stats.InTransit++
		case entities.Delivered:
			if sh.ActualDelivery != nil && sameDay(*sh.ActualDelivery, now) {
				stats.DeliveredToday++
			}
		}
	}
	return stats
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func criticalMissing(needs []*entities.Need, pm *priority.Manager, now time.Time, topN int) []CriticalItem {
	if topN <= 0 {
		topN = defaultTopN
	}

	var candidates []*entities.Need
	for _, n := range needs {
		if n.IsDeleted() || n.IsFulfilled() {
			continue
		}
		candidates = append(candidates, n)
	}

	ordered, _ := pm.Ordered(candidates, now, false)

	items := make([]CriticalItem, 0, len(ordered))
	for _, n := range ordered {
		items = append(items, CriticalItem{
			NeedID:      n.ID,
			Title:       n.Title,
			Category:    n.Category,
			Score:       pm.Score(n, now),
			HoursWaited: n.HoursWaited(now),
		})
	}
	if len(items) > topN {
		items = items[:topN]
	}
	return items
}

func byCategory(needs []*entities.Need, supplies []*entities.Supply) map[string]CategoryStat {
	type accum struct {
		required, fulfilled, allocatable int
	}
	acc := make(map[string]*accum)

	get := func(category string) *accum {
		a, ok := acc[category]
		if !ok {
			a = &accum{}
			acc[category] = a
		}
		return a
	}

	for _, n := range needs {
		if n.IsDeleted() {
			continue
		}
		a := get(n.Category)
		a.required += n.Required
		a.fulfilled += n.Fulfilled
	}
	for _, s := range supplies {
		if s.IsDeleted() {
			continue
		}
		get(s.Category).allocatable += s.Allocatable()
	}

	out := make(map[string]CategoryStat, len(acc))
	for category, a := range acc {
		var pct float64
		if a.required > 0 {
			pct = float64(a.fulfilled) / float64(a.required) * 100
		}
		out[category] = CategoryStat{FulfillmentPercent: pct, Allocatable: a.allocatable}
	}
	return out
}
