// internal/ledger/arrival_test.go
package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestRemaining(t *testing.T) {
	assert.Equal(t, 10, Remaining(10, 0))
	assert.Equal(t, 4, Remaining(10, 6))
	assert.Equal(t, 0, Remaining(10, 10))
	assert.Equal(t, 0, Remaining(10, 15))
}

func TestClampArrival(t *testing.T) {
	// Nil request takes everything outstanding.
	assert.Equal(t, 8, ClampArrival(8, nil))

	// Explicit requests clamp into [1, remaining].
	assert.Equal(t, 3, ClampArrival(8, intPtr(3)))
	assert.Equal(t, 8, ClampArrival(8, intPtr(100)))
	assert.Equal(t, 1, ClampArrival(8, intPtr(0)))
	assert.Equal(t, 1, ClampArrival(8, intPtr(-5)))

	// Nothing remaining yields zero regardless of the request.
	assert.Equal(t, 0, ClampArrival(0, nil))
	assert.Equal(t, 0, ClampArrival(0, intPtr(4)))
}
