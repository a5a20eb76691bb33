package matching

import (
	"testing"
	"time"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
)

func TestMatchScore_UnrelatedCategoryIsIneligible(t *testing.T) {
	n, _ := entities.NewNeed("toys", "Toys", entities.Low, 10, "unit", entities.Location{})
	s, _ := entities.NewSupply("bandages", "Medical", 10, "unit", entities.Location{})

	if got := matchScore(n, s, DefaultConfig(), time.Now()); got != 0 {
		t.Fatalf("expected ineligible pair to score 0, got %v", got)
	}
}

func TestMatchScore_StockRatioCapsAtOne(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Now()
	n, _ := entities.NewNeed("water", "Water", entities.High, 10, "unit", entities.Location{})

	exactMatch, _ := entities.NewSupply("match", "Water", 10, "unit", entities.Location{})
	doubleStock, _ := entities.NewSupply("double", "Water", 20, "unit", entities.Location{})

	scoreExact := matchScore(n, exactMatch, cfg, now)
	scoreDouble := matchScore(n, doubleStock, cfg, now)

	if scoreExact != scoreDouble {
		t.Fatalf("expected stock-ratio bonus to cap at 1.0 for both, got exact=%v double=%v", scoreExact, scoreDouble)
	}
}

func TestMatchScore_ExpiringSoonAddsBonus(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Now()
	n, _ := entities.NewNeed("food", "Food", entities.High, 10, "unit", entities.Location{})

	fresh, _ := entities.NewSupply("fresh", "Food", 10, "unit", entities.Location{})
	expiringSoon, _ := entities.NewSupply("expiring", "Food", 10, "unit", entities.Location{})
	soon := now.Add(48 * time.Hour)
	expiringSoon.Expiration = &soon

	if matchScore(n, expiringSoon, cfg, now) <= matchScore(n, fresh, cfg, now) {
		t.Fatalf("expected expiring-soon supply to score higher")
	}
}

func TestMatchScore_ProximityFadesWithDistance(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Now()
	n, _ := entities.NewNeed("food", "Food", entities.High, 10, "unit", entities.Location{Latitude: 10, Longitude: 10})

	near, _ := entities.NewSupply("near", "Food", 10, "unit", entities.Location{Latitude: 10.01, Longitude: 10.01})
	far, _ := entities.NewSupply("far", "Food", 10, "unit", entities.Location{Latitude: 40, Longitude: 40})

	if matchScore(n, near, cfg, now) <= matchScore(n, far, cfg, now) {
		t.Fatalf("expected nearer supply to score higher")
	}
}

func TestMatchScore_UnknownLocationContributesNoProximityScore(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Now()
	n, _ := entities.NewNeed("food", "Food", entities.High, 10, "unit", entities.Location{})
	s, _ := entities.NewSupply("food", "Food", 10, "unit", entities.Location{Latitude: 10, Longitude: 10})

	got := matchScore(n, s, cfg, now)
	want := categoryScore("Food", "Food", cfg.CategoryMatchWeight) + 1.0*0.2 // stock ratio caps at 1.0 (10/10)
	if got != want {
		t.Fatalf("expected score %v with no proximity contribution, got %v", want, got)
	}
}
