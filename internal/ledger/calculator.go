// internal/ledger/calculator.go
package ledger

import (
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

// Totals are the quantities derived from one item's full movement history.
// Stock is sum(IN) - sum(OUT); PURCHASE movements never count toward it.
// PendingIn is the ordered-but-not-received quantity, approximated as the
// global aggregate max(0, sum(PURCHASE) - sum(IN)) rather than a
// per-purchase-order balance.
type Totals struct {
	Stock     int `json:"stock"`
	PendingIn int `json:"pending_in"`
}

// Calculate derives Totals from the given movements. Order of the slice is
// irrelevant; the result must be re-derivable from the full history at any
// time, so no cached running total is ever authoritative over this.
func Calculate(movements []models.Movement) Totals {
	var in, out, purchased int
	for _, m := range movements {
		switch m.Type {
		case models.MovementIn:
			in += m.Count
		case models.MovementOut:
			out += m.Count
		case models.MovementPurchase:
			purchased += m.Count
		}
	}

	pending := purchased - in
	if pending < 0 {
		pending = 0
	}

	return Totals{
		Stock:     in - out,
		PendingIn: pending,
	}
}
