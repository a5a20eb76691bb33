// Package priority implements the effective-priority scoring and ordering
// described in the disaster-relief matching specification: a continuous
// urgency score derived from a need's base priority, how long it has
// waited, its deadline pressure, and how close it already is to being
// fulfilled.
package priority

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
)

// AgingThresholds controls when a base priority level starts escalating
// due to wait time, in hours.
type AgingThresholds struct {
	LowToMedium    float64
	MediumToHigh   float64
	HighToCritical float64
}

// DefaultAgingThresholds matches the spec's default configuration
// (24h/12h/6h).
func DefaultAgingThresholds() AgingThresholds {
	return AgingThresholds{
		LowToMedium:    24,
		MediumToHigh:   12,
		HighToCritical: 6,
	}
}

// EmergencyAgingThresholds matches the spec's "emergency" preset
// (6h/3h/1h), for deployments expecting faster escalation.
func EmergencyAgingThresholds() AgingThresholds {
	return AgingThresholds{
		LowToMedium:    6,
		MediumToHigh:   3,
		HighToCritical: 1,
	}
}

// Manager computes effective priority scores for needs and produces
// priority-ordered views over a collection of them.
type Manager struct {
	thresholds AgingThresholds
}

// NewManager creates a Manager using the given aging thresholds.
func NewManager(thresholds AgingThresholds) *Manager {
	return &Manager{thresholds: thresholds}
}

// NewDefaultManager creates a Manager using DefaultAgingThresholds.
func NewDefaultManager() *Manager {
	return NewManager(DefaultAgingThresholds())
}

// agingStep describes the threshold/max-escalation pair a base priority
// level ages through.
type agingStep struct {
	threshold     float64
	maxEscalation float64
}

func (m *Manager) agingStepFor(base entities.PriorityLevel) (agingStep, bool) {
	switch base {
	case entities.Low:
		return agingStep{threshold: m.thresholds.LowToMedium, maxEscalation: 3}, true
	case entities.Medium:
		return agingStep{threshold: m.thresholds.MediumToHigh, maxEscalation: 2}, true
	case entities.High:
		return agingStep{threshold: m.thresholds.HighToCritical, maxEscalation: 1}, true
	default: // Critical never ages further
		return agingStep{}, false
	}
}

// agingBonus returns the escalation subtracted from the base score for
// having waited `waitedHours` at base priority level `base`.
func (m *Manager) agingBonus(base entities.PriorityLevel, waitedHours float64) float64 {
	step, ok := m.agingStepFor(base)
	if !ok || waitedHours <= step.threshold {
		return 0
	}
	bonus := math.Log2(waitedHours/step.threshold + 1)
	if bonus > step.maxEscalation {
		return step.maxEscalation
	}
	return bonus
}

// deadlineBonus returns the deadline-pressure bonus for a need with
// `hoursUntil` hours remaining until its deadline.
func deadlineBonus(hoursUntil float64) float64 {
	switch {
	case hoursUntil <= 0:
		return 2.0
	case hoursUntil <= 6:
		return 1.0
	case hoursUntil <= 24:
		return 0.5
	default:
		return 0
	}
}

// completionBonus returns the near-completion bonus: 0.5 when a need is at
// least 80% fulfilled but not yet complete.
func completionBonus(n *entities.Need) float64 {
	if !n.IsFulfilled() && n.FulfillmentPercent() >= 80 {
		return 0.5
	}
	return 0
}

// Score computes the effective priority score for a need as of `now`,
// clamped to [0.0, 3.0]. Lower means more urgent.
func (m *Manager) Score(n *entities.Need, now time.Time) float64 {
	base := n.Priority.Numeric()
	waited := n.HoursWaited(now)

	score := base - m.agingBonus(n.Priority, waited) - completionBonus(n)

	if h, ok := n.HoursUntilDeadline(now); ok {
		score -= deadlineBonus(h)
	}

	return clamp(score, 0.0, 3.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Level maps a continuous score to its discrete display level.
func Level(score float64) entities.PriorityLevel {
	switch {
	case score < 0.5:
		return entities.Critical
	case score < 1.5:
		return entities.High
	case score < 2.5:
		return entities.Medium
	default:
		return entities.Low
	}
}

// EffectiveLevel is a convenience combining Score and Level for a need as
// of now.
func (m *Manager) EffectiveLevel(n *entities.Need, now time.Time) entities.PriorityLevel {
	return Level(m.Score(n, now))
}

// Ordered sorts needs (most urgent first) by ascending effective priority
// score, breaking ties by creation timestamp (older first) for a
// deterministic, stable order. When excludeFulfilledAndDeleted is true,
// fulfilled and soft-deleted needs are omitted from the result. Returns
// entities.ErrInvalidArgument if needs is nil.
func (m *Manager) Ordered(needs []*entities.Need, now time.Time, excludeFulfilledAndDeleted bool) ([]*entities.Need, error) {
	if needs == nil {
		return nil, fmt.Errorf("%w: needs collection must not be nil", entities.ErrInvalidArgument)
	}

	filtered := make([]*entities.Need, 0, len(needs))
	for _, n := range needs {
		if excludeFulfilledAndDeleted && (n.IsDeleted() || n.IsFulfilled()) {
			continue
		}
		filtered = append(filtered, n)
	}

	scores := make(map[*entities.Need]float64, len(filtered))
	for _, n := range filtered {
		scores[n] = m.Score(n, now)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if scores[a] != scores[b] {
			return scores[a] < scores[b]
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return filtered, nil
}
