package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
	"github.com/reliefgrid/coordinator/pkg/domain/services/priority"
	"github.com/reliefgrid/coordinator/pkg/infrastructure/events"
)

func newEngine() *Engine {
	return NewEngine(DefaultConfig(), priority.NewDefaultManager(), nil)
}

func TestEngine_EmptyNeedsYieldsSuccessWithNoAllocations(t *testing.T) {
	e := newEngine()
	result, err := e.Run([]*entities.Need{}, []*entities.Supply{}, time.Now())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Empty(t, result.Allocations)
}

func TestEngine_RejectsNilCollections(t *testing.T) {
	e := newEngine()
	_, err := e.Run(nil, []*entities.Supply{}, time.Now())
	require.Error(t, err)

	_, err = e.Run([]*entities.Need{}, nil, time.Now())
	require.Error(t, err)
}

func TestEngine_SimpleExactMatch(t *testing.T) {
	e := newEngine()
	now := time.Now()

	n, err := entities.NewNeed("bottled water", "Food", entities.High, 10, "unit", entities.Location{Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	s, err := entities.NewSupply("canned food", "Food", 20, "unit", entities.Location{Latitude: 1, Longitude: 1})
	require.NoError(t, err)

	result, err := e.Run([]*entities.Need{n}, []*entities.Supply{s}, now)
	require.NoError(t, err)
	require.True(t, result.Success, result.Message)
	require.Len(t, result.Allocations, 1)
	require.Equal(t, 10, n.Fulfilled)
	require.Equal(t, 10, s.Available)
	require.Zero(t, s.Reserved, "reserved should net back to zero after a committed slice")
}

func TestEngine_PartialAcrossTwoSupplies(t *testing.T) {
	e := newEngine()
	now := time.Now()

	n, err := entities.NewNeed("water", "Water", entities.High, 30, "unit", entities.Location{})
	require.NoError(t, err)
	exact, err := entities.NewSupply("bottled water", "Water", 20, "unit", entities.Location{})
	require.NoError(t, err)
	related, err := entities.NewSupply("hydration packs", "Hydration", 15, "unit", entities.Location{})
	require.NoError(t, err)

	result, err := e.Run([]*entities.Need{n}, []*entities.Supply{exact, related}, now)
	require.NoError(t, err)
	require.True(t, result.Success, result.Message)
	require.Equal(t, 30, n.Fulfilled, "expected need fully fulfilled across both supplies")
	require.Zero(t, exact.Available, "expected exact-category supply exhausted first")
	require.Equal(t, 5, related.Available, "expected 10 drawn from related supply")

	require.Len(t, result.Allocations, 1)
	alloc := result.Allocations[0]
	require.Len(t, alloc.Supplies, 2)
	require.Equal(t, exact.ID, alloc.Supplies[0].SupplyID)
	require.Equal(t, 20, alloc.Supplies[0].Quantity)
	require.True(t, alloc.Supplies[0].Exhausted)
	require.Equal(t, related.ID, alloc.Supplies[1].SupplyID)
	require.Equal(t, 10, alloc.Supplies[1].Quantity)
}

func TestEngine_PartialGateRejectsTinySlice(t *testing.T) {
	e := newEngine()
	now := time.Now()

	n, err := entities.NewNeed("blankets", "Shelter", entities.Medium, 100, "unit", entities.Location{})
	require.NoError(t, err)
	s, err := entities.NewSupply("spare blankets", "Shelter", 5, "unit", entities.Location{})
	require.NoError(t, err)

	result, err := e.Run([]*entities.Need{n}, []*entities.Supply{s}, now)
	require.NoError(t, err)
	require.True(t, result.Success, "gate rejection is not a pass failure")
	require.Empty(t, result.Allocations)
	require.Zero(t, n.Fulfilled)
	require.Equal(t, 5, s.Available)
}

func TestEngine_PartialDisabledRequiresSingleCandidateCoverage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowPartialFulfillment = false
	e := NewEngine(cfg, priority.NewDefaultManager(), nil)
	now := time.Now()

	n, err := entities.NewNeed("tents", "Shelter", entities.High, 30, "unit", entities.Location{})
	require.NoError(t, err)
	small, err := entities.NewSupply("small tent lot", "Shelter", 10, "unit", entities.Location{})
	require.NoError(t, err)

	result, err := e.Run([]*entities.Need{n}, []*entities.Supply{small}, now)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Empty(t, result.Allocations, "expected need left unfulfilled when no single candidate covers it")
	require.Zero(t, n.Fulfilled)
	require.Equal(t, 10, small.Available)
}

func TestEngine_DeletedAndExpiredSuppliesAreIneligible(t *testing.T) {
	e := newEngine()
	now := time.Now()

	n, err := entities.NewNeed("meds", "Medical", entities.Critical, 10, "unit", entities.Location{})
	require.NoError(t, err)

	deleted, err := entities.NewSupply("deleted stock", "Medical", 10, "unit", entities.Location{})
	require.NoError(t, err)
	deleted.MarkAsDeleted()

	expiredAt := now.Add(-time.Hour)
	expired, err := entities.NewSupply("expired stock", "Medical", 10, "unit", entities.Location{})
	require.NoError(t, err)
	expired.Expiration = &expiredAt

	result, err := e.Run([]*entities.Need{n}, []*entities.Supply{deleted, expired}, now)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Empty(t, result.Allocations, "expected no allocations against deleted/expired supplies")
}

func TestEngine_RecordsMatchFulfillmentAndDepletionEvents(t *testing.T) {
	sink := events.NewMemorySink()
	e := NewEngine(DefaultConfig(), priority.NewDefaultManager(), sink)
	now := time.Now()

	n, err := entities.NewNeed("bottled water", "Food", entities.High, 10, "unit", entities.Location{Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	s, err := entities.NewSupply("canned food", "Food", 10, "unit", entities.Location{Latitude: 1, Longitude: 1})
	require.NoError(t, err)

	result, err := e.Run([]*entities.Need{n}, []*entities.Supply{s}, now)
	require.NoError(t, err)
	require.True(t, result.Success)

	require.Len(t, sink.ByType(events.MatchMade), 1)
	require.Len(t, sink.ByType(events.NeedFulfilled), 1, "need consumed the full supply, so it should be fully fulfilled")
	require.Len(t, sink.ByType(events.SupplyDepleted), 1, "the sole supply should be exhausted by the match")
}
