package entities

import (
	"regexp"
	"testing"
)

var trackingCodePattern = regexp.MustCompile(`^DL-\d{14}-[0-9A-F]{6}$`)

func TestShipment_TrackingCodeFormat(t *testing.T) {
	sh, err := NewShipment(High, Location{}, Location{}, 10)
	if err != nil {
		t.Fatalf("expected valid shipment creation, got %v", err)
	}
	if !trackingCodePattern.MatchString(sh.TrackingCode) {
		t.Fatalf("tracking code %q does not match DL-<14 digits>-<6 hex> format", sh.TrackingCode)
	}
}

func TestShipment_InitialStateAndActive(t *testing.T) {
	sh, _ := NewShipment(Medium, Location{}, Location{}, 1)
	if sh.Status != Pending {
		t.Fatalf("expected initial status Pending, got %v", sh.Status)
	}
	if !sh.IsActive() {
		t.Fatalf("expected Pending shipment to be active")
	}
}

func TestShipment_InvalidQuantity(t *testing.T) {
	if _, err := NewShipment(Low, Location{}, Location{}, 0); err == nil {
		t.Fatalf("expected error for non-positive quantity")
	}
}

func TestShipmentStatus_TerminalStates(t *testing.T) {
	terminal := []ShipmentStatus{Delivered, Cancelled, Failed}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %v to be terminal", s)
		}
	}
	nonTerminal := []ShipmentStatus{Pending, Approved, InTransit, AtDistributionCenter, OutForDelivery}
	for _, s := range nonTerminal {
		if s.IsTerminal() {
			t.Errorf("expected %v to be non-terminal", s)
		}
	}
}
