package matching

import "github.com/reliefgrid/coordinator/pkg/domain/entities"

// slice records one quantity movement from a supply to a need during a
// matching pass, in application order. It is the transaction's ledger
// entry: committing is a flag flip, rolling back replays this list in
// reverse.
type slice struct {
	need     *entities.Need
	supply   *entities.Supply
	quantity int
}

// transaction accumulates the slices applied during a single matching
// pass so they can be reversed if the pass aborts before commit.
type transaction struct {
	slices    []slice
	committed bool
}

func newTransaction() *transaction {
	return &transaction{}
}

// apply reserves and deducts quantity from supply, credits it to need's
// fulfilled count, and records the movement. Returns false without
// mutating anything if any mutator rejects the call (the caller is
// expected to only ever request quantities within bounds, so this is a
// defensive check, not an expected path).
func (tx *transaction) apply(n *entities.Need, s *entities.Supply, quantity int) bool {
	if !s.Reserve(quantity) {
		return false
	}
	if !s.DeductStock(quantity) {
		s.ReleaseReservation(quantity)
		return false
	}
	if !n.AddFulfilledQuantity(quantity) {
		s.AddStock(quantity)
		return false
	}
	tx.slices = append(tx.slices, slice{need: n, supply: s, quantity: quantity})
	return true
}

// commit marks the transaction irrevocable. Rollback after commit is a
// no-op.
func (tx *transaction) commit() {
	tx.committed = true
}

// rollback reverses every recorded slice in reverse application order,
// restoring each touched supply's available stock and each touched need's
// fulfilled count to their pre-pass values. No-op once committed.
func (tx *transaction) rollback() {
	if tx.committed {
		return
	}
	for i := len(tx.slices) - 1; i >= 0; i-- {
		s := tx.slices[i]
		s.supply.AddStock(s.quantity)
		s.need.Fulfilled -= s.quantity
		if s.need.Fulfilled < 0 {
			s.need.Fulfilled = 0
		}
		s.need.Touch()
	}
}
