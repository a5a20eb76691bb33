// Package demo builds an in-memory disaster-relief scenario the CLI can
// run a matching pass and dashboard snapshot against without any external
// store, for smoke-testing the wiring end to end.
package demo

import (
	"time"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
	"github.com/reliefgrid/coordinator/pkg/infrastructure/events"
)

// Scenario is a seeded set of needs, supplies, and shipments.
type Scenario struct {
	Needs     []*entities.Need
	Supplies  []*entities.Supply
	Shipments []*entities.Shipment
}

// Build constructs a small, varied scenario: an overdue critical medical
// need, an aging food shortage, a nearly-fulfilled shelter request, and a
// spread of supplies at different distances and freshness, plus one
// shipment already underway. Every entity it creates is recorded to sink,
// which may be nil.
func Build(now time.Time, sink events.Sink) Scenario {
	portAuPrince := entities.Location{Latitude: 18.5944, Longitude: -72.3074}
	jacmel := entities.Location{Latitude: 18.2341, Longitude: -72.5347}
	leogane := entities.Location{Latitude: 18.5119, Longitude: -72.6333}

	insulin, _ := entities.NewNeed("Insulin vials", "Medical", entities.Critical, 200, "vial", jacmel)
	insulin.CreatedAt = now.Add(-90 * time.Minute)
	insulin.Requester = "Jacmel Field Clinic"

	rice, _ := entities.NewNeed("Rice rations", "Food", entities.Medium, 500, "kg", leogane)
	rice.CreatedAt = now.Add(-30 * time.Hour)
	rice.Requester = "Leogane Distribution Center"

	tents, _ := entities.NewNeed("Family tents", "Shelter", entities.Low, 100, "unit", portAuPrince)
	tents.Fulfilled = 85
	tents.Requester = "Port-au-Prince Camp 4"

	insulinStock, _ := entities.NewSupply("Insulin vials", "Medical", 150, "vial", portAuPrince)
	expiry := now.Add(3 * 24 * time.Hour)
	insulinStock.Expiration = &expiry

	riceStock, _ := entities.NewSupply("Rice rations", "Nutrition", 300, "kg", leogane)
	riceStock.Supplier = "World Food Programme"

	tentStock, _ := entities.NewSupply("Family tents", "Housing", 20, "unit", portAuPrince)

	underway, _ := entities.NewShipment(entities.High, portAuPrince, jacmel, 100)
	dispatch := now.Add(-2 * time.Hour)

	if sink != nil {
		sink.Record(events.NewNeedCreatedEntry(insulin))
		sink.Record(events.NewNeedCreatedEntry(rice))
		sink.Record(events.NewNeedCreatedEntry(tents))
		sink.Record(events.NewSupplyCreatedEntry(insulinStock))
		sink.Record(events.NewSupplyCreatedEntry(riceStock))
		sink.Record(events.NewSupplyCreatedEntry(tentStock))
		sink.Record(events.NewShipmentCreatedEntry(underway))
	}

	underway.Status = entities.InTransit
	underway.ActualDispatch = &dispatch
	if sink != nil {
		sink.Record(events.NewShipmentStatusEntry(underway))
	}

	return Scenario{
		Needs:     []*entities.Need{insulin, rice, tents},
		Supplies:  []*entities.Supply{insulinStock, riceStock, tentStock},
		Shipments: []*entities.Shipment{underway},
	}
}
