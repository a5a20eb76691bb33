package matching

import (
	"time"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
)

// matchScore computes the match score for a (need, supply) pair as of now.
// A zero score means the supply is ineligible for this need (hard
// category cutoff); any other sub-score only ever adds to an eligible
// pairing.
func matchScore(n *entities.Need, s *entities.Supply, cfg Config, now time.Time) float64 {
	cat := categoryScore(n.Category, s.Category, cfg.CategoryMatchWeight)
	if cat == 0 {
		return 0
	}

	score := cat

	if d, ok := entities.Distance(n.Location, s.Location); ok {
		factor := 1 - d/cfg.MaxProximityDistanceKm
		if factor < 0 {
			factor = 0
		}
		score += factor * cfg.ProximityWeight
	}

	remaining := n.Remaining()
	if remaining > 0 {
		ratio := float64(s.Allocatable()) / float64(remaining)
		if ratio > 1 {
			ratio = 1
		}
		score += ratio * 0.2
	}

	if s.IsExpiringSoon(now) {
		score += 0.1
	}

	return score
}
