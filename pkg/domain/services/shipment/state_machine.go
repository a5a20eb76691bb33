// Package shipment implements the shipment status state machine: which
// transitions are permitted, and the timestamp side effects they carry.
package shipment

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reliefgrid/coordinator/pkg/domain/entities"
)

// ErrInvalidStateTransition documents why Transition returned false. It is
// never actually returned (Transition is boolean by contract) but gives the
// rejection a named cause in the debug log line Transition writes.
var ErrInvalidStateTransition = errors.New("invalid shipment state transition")

// permitted lists, for each non-terminal status, the statuses a shipment
// may move to via a forward transition. Cancelled and Failed are handled
// separately below since they're reachable from any non-terminal status.
var permitted = map[entities.ShipmentStatus][]entities.ShipmentStatus{
	entities.Pending:              {entities.Approved},
	entities.Approved:             {entities.InTransit},
	entities.InTransit:            {entities.AtDistributionCenter, entities.OutForDelivery, entities.Delivered},
	entities.AtDistributionCenter: {entities.OutForDelivery},
	entities.OutForDelivery:       {entities.Delivered},
}

// Transition attempts to move sh to target. Returns true and applies the
// timestamp side effects on success; returns false and leaves sh unchanged
// when the transition is not permitted.
func Transition(sh *entities.Shipment, target entities.ShipmentStatus, now time.Time) bool {
	if !isPermitted(sh.Status, target) {
		log.Debug().
			Err(ErrInvalidStateTransition).
			Str("shipmentId", sh.ID.String()).
			Str("from", sh.Status.String()).
			Str("to", target.String()).
			Msg("rejected shipment transition")
		return false
	}

	if target == entities.InTransit && sh.ActualDispatch == nil {
		t := now
		sh.ActualDispatch = &t
	}
	if target == entities.Delivered {
		t := now
		sh.ActualDelivery = &t
	}

	sh.Status = target
	sh.Touch()
	return true
}

func isPermitted(from, to entities.ShipmentStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == entities.Cancelled || to == entities.Failed {
		return true
	}
	for _, candidate := range permitted[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
