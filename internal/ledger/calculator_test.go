// internal/ledger/calculator_test.go
package ledger

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

func movement(t models.MovementType, count int) models.Movement {
	return models.Movement{Type: t, Count: count}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		movements []models.Movement
		expected  Totals
	}{
		{
			name:     "empty history",
			expected: Totals{Stock: 0, PendingIn: 0},
		},
		{
			name: "in and out",
			movements: []models.Movement{
				movement(models.MovementIn, 10),
				movement(models.MovementOut, 3),
			},
			expected: Totals{Stock: 7, PendingIn: 0},
		},
		{
			name: "purchase does not count as stock",
			movements: []models.Movement{
				movement(models.MovementPurchase, 20),
			},
			expected: Totals{Stock: 0, PendingIn: 20},
		},
		{
			name: "arrivals consume pending",
			movements: []models.Movement{
				movement(models.MovementPurchase, 20),
				movement(models.MovementIn, 8),
			},
			expected: Totals{Stock: 8, PendingIn: 12},
		},
		{
			name: "pending floors at zero when in exceeds purchased",
			movements: []models.Movement{
				movement(models.MovementPurchase, 5),
				movement(models.MovementIn, 9),
			},
			expected: Totals{Stock: 9, PendingIn: 0},
		},
		{
			name: "stock can go negative only through history edits",
			movements: []models.Movement{
				movement(models.MovementIn, 2),
				movement(models.MovementOut, 5),
			},
			expected: Totals{Stock: -3, PendingIn: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Calculate(tt.movements))
		})
	}
}

func TestCalculateOrderIndependent(t *testing.T) {
	movements := []models.Movement{
		movement(models.MovementIn, 10),
		movement(models.MovementOut, 4),
		movement(models.MovementPurchase, 12),
		movement(models.MovementIn, 5),
		movement(models.MovementOut, 1),
	}
	expected := Calculate(movements)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]models.Movement, len(movements))
		copy(shuffled, movements)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, expected, Calculate(shuffled))
	}
}
