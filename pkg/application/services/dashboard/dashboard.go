package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
	"github.com/reliefgrid/coordinator/pkg/domain/services/priority"
	"github.com/reliefgrid/coordinator/pkg/infrastructure/events"
)

// Dashboard computes Snapshots and runs the panic detector against the
// same priority manager the Matching Engine uses, so "effective priority"
// means the same thing everywhere in the system.
type Dashboard struct {
	priority *priority.Manager
	panicCfg PanicConfig
	sink     events.Sink
}

// New creates a Dashboard. sink may be nil, in which case panic detection
// still runs and populates Snapshot.PanicNeedIDs, but no audit entry is
// recorded and no observer is notified.
func New(pm *priority.Manager, panicCfg PanicConfig, sink events.Sink) *Dashboard {
	return &Dashboard{priority: pm, panicCfg: panicCfg, sink: sink}
}

// Snapshot computes a full read-model over needs, supplies, and shipments
// as of now, and runs panic detection. Every call re-evaluates panic state
// from scratch (snapshots are stateless): a need flagged in a prior
// snapshot that's still unresolved is flagged, and reported, again, with
// its own audit entry and observer notification.
func (d *Dashboard) Snapshot(needs []*entities.Need, supplies []*entities.Supply, shipments []*entities.Shipment, now time.Time, topN int) Snapshot {
	snap := Snapshot{
		GeneratedAt:     now,
		Needs:           aggregateNeeds(needs),
		Supplies:        aggregateSupplies(supplies),
		Shipments:       aggregateShipments(shipments, now),
		CriticalMissing: criticalMissing(needs, d.priority, now, topN),
		ByCategory:      byCategory(needs, supplies),
	}

	panicking := detectPanic(needs, d.priority, d.panicCfg, now)
	snap.PanicNeedIDs = make([]uuid.UUID, len(panicking))
	for i, n := range panicking {
		snap.PanicNeedIDs[i] = n.ID
	}

	if len(panicking) > 0 && d.sink != nil {
		d.sink.Record(events.NewPanicModeTriggeredEntry(len(panicking)))
		d.sink.NotifyPanicModeTriggered(snap.PanicNeedIDs)
	}

	return snap
}
