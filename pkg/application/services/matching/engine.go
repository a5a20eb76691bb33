package matching

import (
	"fmt"
	"sort"
	"time"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
	"github.com/reliefgrid/coordinator/pkg/domain/services/priority"
	"github.com/reliefgrid/coordinator/pkg/infrastructure/events"
)

// Engine executes matching passes: one atomic walk over a snapshot of
// needs and supplies, ordered by effective priority, producing allocations
// and committing the underlying quantity mutations on success.
type Engine struct {
	config   Config
	priority *priority.Manager
	sink     events.Sink
}

// NewEngine creates an Engine with the given config, priority manager, and
// audit sink. sink may be nil, in which case matching still runs but no
// match/fulfillment/depletion/failure entries are recorded.
func NewEngine(config Config, pm *priority.Manager, sink events.Sink) *Engine {
	return &Engine{config: config, priority: pm, sink: sink}
}

// NewDefaultEngine creates an Engine using DefaultConfig, a
// default-configured priority Manager, and no audit sink.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultConfig(), priority.NewDefaultManager(), nil)
}

type scoredSupply struct {
	supply *entities.Supply
	score  float64
}

// Run executes one matching pass over needs and supplies as of now.
// Returns entities.ErrInvalidArgument if either collection is nil. A
// mid-pass failure rolls back every mutation made during this call and is
// reported via Result.Success=false / Result.Err, not via the returned
// error.
func (e *Engine) Run(needs []*entities.Need, supplies []*entities.Supply, now time.Time) (*Result, error) {
	if needs == nil || supplies == nil {
		return nil, fmt.Errorf("%w: needs and supplies collections must not be nil", entities.ErrInvalidArgument)
	}

	ordered, err := e.priority.Ordered(needs, now, true)
	if err != nil {
		return nil, err
	}
	if len(ordered) == 0 {
		return &Result{Success: true, Message: "no outstanding needs to match"}, nil
	}

	tx := newTransaction()
	var allocations []entities.Allocation

	for _, n := range ordered {
		if n.IsFulfilled() {
			continue
		}
		candidates := e.eligibleSupplies(supplies, now)
		scored := e.scoreCandidates(n, candidates, now)
		if len(scored) == 0 {
			continue
		}

		alloc, aborted := e.allocateNeed(n, scored, tx, now)
		if aborted {
			tx.rollback()
			reason := fmt.Sprintf("need %s: quantity mutator rejected an in-bounds slice", n.ID)
			if e.sink != nil {
				e.sink.Record(events.NewMatchFailedEntry(reason))
			}
			return &Result{
				Success: false,
				Message: "matching pass aborted: " + reason,
				Err:     fmt.Errorf("%w: %s", ErrMatchingAborted, reason),
			}, nil
		}
		if len(alloc.Supplies) > 0 {
			allocations = append(allocations, alloc)
			if e.sink != nil {
				e.sink.Record(events.NewMatchMadeEntry(alloc))
				if n.IsFulfilled() {
					e.sink.Record(events.NewNeedFulfilledEntry(n))
				}
			}
		}
	}

	tx.commit()
	return &Result{
		Success:     true,
		Message:     fmt.Sprintf("%d allocation(s) committed", len(allocations)),
		Allocations: allocations,
	}, nil
}

// eligibleSupplies filters out deleted, expired, and fully-reserved supplies.
func (e *Engine) eligibleSupplies(supplies []*entities.Supply, now time.Time) []*entities.Supply {
	out := make([]*entities.Supply, 0, len(supplies))
	for _, s := range supplies {
		if s.IsDeleted() || s.IsExpired(now) || s.Allocatable() == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

// scoreCandidates scores every candidate supply against n, drops
// zero-scored (ineligible) ones, and orders the rest descending by score,
// tie-broken by supply identifier for a deterministic walk order.
func (e *Engine) scoreCandidates(n *entities.Need, candidates []*entities.Supply, now time.Time) []scoredSupply {
	scored := make([]scoredSupply, 0, len(candidates))
	for _, s := range candidates {
		if sc := matchScore(n, s, e.config, now); sc > 0 {
			scored = append(scored, scoredSupply{supply: s, score: sc})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].supply.ID.String() < scored[j].supply.ID.String()
	})
	return scored
}

// allocateNeed walks scored candidates for a single need, applying slices
// through tx per the partial-fulfillment gate and policy described in the
// matching specification. Returns aborted=true if a quantity mutator
// unexpectedly rejected an in-bounds slice, signaling the caller to roll
// back the whole pass.
func (e *Engine) allocateNeed(n *entities.Need, scored []scoredSupply, tx *transaction, now time.Time) (entities.Allocation, bool) {
	alloc := entities.Allocation{NeedID: n.ID, AllocatedAt: now}
	appliedAny := false

	for _, cand := range scored {
		if n.Remaining() == 0 {
			break
		}
		s := cand.supply

		sliceQty := s.Allocatable()
		if remaining := n.Remaining(); sliceQty > remaining {
			sliceQty = remaining
		}

		if !e.config.AllowPartialFulfillment {
			if sliceQty < n.Remaining() {
				break // top candidate can't cover it alone; leave need for a later pass
			}
		} else if !appliedAny {
			pct := float64(sliceQty) / float64(n.Required) * 100
			if pct < e.config.MinPartialFulfillmentPercent {
				continue // first slice too small; try the next candidate
			}
		}

		if !tx.apply(n, s, sliceQty) {
			return alloc, true
		}
		appliedAny = true
		exhausted := s.Allocatable() == 0
		alloc.Supplies = append(alloc.Supplies, entities.SupplyAllocation{
			SupplyID:  s.ID,
			Quantity:  sliceQty,
			Score:     cand.score,
			Exhausted: exhausted,
		})
		if exhausted && e.sink != nil {
			e.sink.Record(events.NewSupplyDepletedEntry(s))
		}

		if !e.config.AllowPartialFulfillment {
			break
		}
	}

	alloc.FulfillmentPercent = n.FulfillmentPercent()
	return alloc, false
}
