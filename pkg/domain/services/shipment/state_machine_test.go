package shipment

import (
	"testing"
	"time"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
)

func newShipment(t *testing.T) *entities.Shipment {
	t.Helper()
	sh, err := entities.NewShipment(entities.High, entities.Location{}, entities.Location{}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return sh
}

func TestTransition_HappyPath(t *testing.T) {
	sh := newShipment(t)
	now := time.Now()

	steps := []entities.ShipmentStatus{
		entities.Approved,
		entities.InTransit,
		entities.OutForDelivery,
		entities.Delivered,
	}
	for _, next := range steps {
		if !Transition(sh, next, now) {
			t.Fatalf("expected transition to %v to succeed from %v", next, sh.Status)
		}
	}
	if sh.Status != entities.Delivered {
		t.Fatalf("expected final status Delivered, got %v", sh.Status)
	}
	if sh.ActualDelivery == nil {
		t.Fatalf("expected ActualDelivery to be set on entering Delivered")
	}
	if sh.ActualDispatch == nil {
		t.Fatalf("expected ActualDispatch to be set on entering InTransit")
	}
}

func TestTransition_RejectsSkippingStates(t *testing.T) {
	sh := newShipment(t)
	if Transition(sh, entities.Delivered, time.Now()) {
		t.Fatalf("expected Pending->Delivered to be rejected")
	}
	if sh.Status != entities.Pending {
		t.Fatalf("expected status unchanged after rejected transition, got %v", sh.Status)
	}
}

func TestTransition_CancelAllowedFromAnyNonTerminalState(t *testing.T) {
	for _, from := range []entities.ShipmentStatus{
		entities.Pending, entities.Approved, entities.InTransit,
		entities.AtDistributionCenter, entities.OutForDelivery,
	} {
		sh := newShipment(t)
		sh.Status = from
		if !Transition(sh, entities.Cancelled, time.Now()) {
			t.Errorf("expected Cancelled to be reachable from %v", from)
		}
	}
}

func TestTransition_NoTransitionsFromTerminalStates(t *testing.T) {
	for _, from := range []entities.ShipmentStatus{entities.Delivered, entities.Cancelled, entities.Failed} {
		sh := newShipment(t)
		sh.Status = from
		if Transition(sh, entities.Approved, time.Now()) {
			t.Errorf("expected no transitions out of terminal state %v", from)
		}
	}
}

func TestTransition_FirstEntryWinsForActualDispatch(t *testing.T) {
	sh := newShipment(t)
	now := time.Now()
	Transition(sh, entities.Approved, now)
	Transition(sh, entities.InTransit, now)
	first := sh.ActualDispatch
	if first == nil {
		t.Fatalf("expected ActualDispatch to be set after entering InTransit")
	}

	later := now.Add(time.Hour)
	Transition(sh, entities.AtDistributionCenter, later)
	if sh.ActualDispatch != first {
		t.Fatalf("expected ActualDispatch to remain the first-set value after a later transition")
	}
}

func TestTransition_AtDistributionCenterToOutForDelivery(t *testing.T) {
	sh := newShipment(t)
	now := time.Now()
	Transition(sh, entities.Approved, now)
	Transition(sh, entities.InTransit, now)
	if !Transition(sh, entities.AtDistributionCenter, now) {
		t.Fatalf("expected InTransit->AtDistributionCenter to succeed")
	}
	if !Transition(sh, entities.OutForDelivery, now) {
		t.Fatalf("expected AtDistributionCenter->OutForDelivery to succeed")
	}
}
