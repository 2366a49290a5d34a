// internal/ledger/validator.go
package ledger

import (
	"math"
	"strings"

	"github.com/Jiu-020812/orange-fanta-back/internal/apperrors"
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

// Normalized is a proposed movement after type-specific validation.
// Price is nil for IN movements (always) and for OUT movements without one.
type Normalized struct {
	Type  models.MovementType
	Count int
	Price *int64
}

// Normalize validates raw movement fields against the per-type rules and
// returns the coerced form. Stock sufficiency for OUT movements is NOT
// checked here; it needs the current ledger state, which the caller has.
func Normalize(rawType string, count float64, price *float64) (Normalized, error) {
	var n Normalized

	switch models.MovementType(strings.ToUpper(strings.TrimSpace(rawType))) {
	case models.MovementIn:
		n.Type = models.MovementIn
	case models.MovementOut:
		n.Type = models.MovementOut
	case models.MovementPurchase:
		n.Type = models.MovementPurchase
	default:
		return n, apperrors.New(apperrors.CodeInvalidType, "movement type must be IN, OUT or PURCHASE")
	}

	// Sign never encodes direction; type does. A negative magnitude is
	// accepted as its absolute value.
	if math.IsNaN(count) || math.IsInf(count, 0) {
		return n, apperrors.New(apperrors.CodeInvalidQuantity, "count must be a positive number")
	}
	n.Count = int(math.Trunc(math.Abs(count)))
	if n.Count <= 0 {
		return n, apperrors.New(apperrors.CodeInvalidQuantity, "count must be a positive number")
	}

	switch n.Type {
	case models.MovementIn:
		// A price supplied on an IN movement is silently discarded.
		n.Price = nil
	case models.MovementPurchase:
		if price == nil || math.IsNaN(*price) || math.IsInf(*price, 0) || *price <= 0 {
			return n, apperrors.New(apperrors.CodePriceRequired, "purchase movements require a positive price")
		}
		p := int64(math.Trunc(*price))
		n.Price = &p
	case models.MovementOut:
		if price == nil {
			break
		}
		if math.IsNaN(*price) || math.IsInf(*price, 0) || *price < 0 {
			return n, apperrors.New(apperrors.CodeInvalidPrice, "price must be zero or greater")
		}
		p := int64(math.Trunc(*price))
		n.Price = &p
	}

	return n, nil
}

// EnsureSufficient rejects an OUT count that exceeds the current on-hand
// stock, attaching the stock value so the caller can adjust.
func EnsureSufficient(totals Totals, count int) error {
	if count > totals.Stock {
		return apperrors.NewWithDetails(apperrors.CodeInsufficientStock,
			"not enough stock on hand",
			map[string]interface{}{"stock": totals.Stock, "requested": count})
	}
	return nil
}
