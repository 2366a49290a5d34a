// internal/ledger/arrival.go
package ledger

// Remaining is the quantity still owed on a purchase after the arrivals
// recorded against it so far, floored at zero.
func Remaining(purchaseCount, arrivedSoFar int) int {
	remaining := purchaseCount - arrivedSoFar
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// ClampArrival resolves how many units one arrival records. A nil request
// takes everything still owed (bulk arrival); an explicit request is
// clamped into [1, remaining] so a partial arrival can never over-fulfill
// the purchase or record a zero/negative count. Returns 0 only when
// nothing remains.
func ClampArrival(remaining int, requested *int) int {
	if remaining <= 0 {
		return 0
	}
	if requested == nil {
		return remaining
	}

	count := *requested
	if count < 1 {
		count = 1
	}
	if count > remaining {
		count = remaining
	}
	return count
}
