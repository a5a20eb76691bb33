package dashboard

import (
	"sort"
	"time"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
	"github.com/reliefgrid/coordinator/pkg/domain/services/priority"
)

// PanicConfig controls when an individual need is flagged by the panic
// detector.
type PanicConfig struct {
	ThresholdHours float64
}

// DefaultPanicConfig matches the specification's default threshold.
func DefaultPanicConfig() PanicConfig {
	return PanicConfig{ThresholdHours: 1.0}
}

// detectPanic returns the needs in acute crisis, sorted by descending
// (waited - threshold): not deleted, not fulfilled, effective priority
// Critical, waited at least the threshold, and either entirely unfulfilled
// or waited more than twice the threshold.
func detectPanic(needs []*entities.Need, pm *priority.Manager, cfg PanicConfig, now time.Time) []*entities.Need {
	var flagged []*entities.Need
	for _, n := range needs {
		if n.IsDeleted() || n.IsFulfilled() {
			continue
		}
		if pm.EffectiveLevel(n, now) != entities.Critical {
			continue
		}
		waited := n.HoursWaited(now)
		if waited < cfg.ThresholdHours {
			continue
		}
		if n.FulfillmentPercent() != 0 && waited <= 2*cfg.ThresholdHours {
			continue
		}
		flagged = append(flagged, n)
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		marginI := flagged[i].HoursWaited(now) - cfg.ThresholdHours
		marginJ := flagged[j].HoursWaited(now) - cfg.ThresholdHours
		return marginI > marginJ
	})
	return flagged
}
