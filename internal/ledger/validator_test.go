// internal/ledger/validator_test.go
package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jiu-020812/orange-fanta-back/internal/apperrors"
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestNormalizeTypes(t *testing.T) {
	n, err := Normalize("in", 3, nil)
	require.NoError(t, err)
	assert.Equal(t, models.MovementIn, n.Type)

	n, err = Normalize("  OUT ", 3, nil)
	require.NoError(t, err)
	assert.Equal(t, models.MovementOut, n.Type)

	n, err = Normalize("Purchase", 3, floatPtr(100))
	require.NoError(t, err)
	assert.Equal(t, models.MovementPurchase, n.Type)

	_, err = Normalize("TRANSFER", 3, nil)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidType))
}

func TestNormalizeCount(t *testing.T) {
	// Negative magnitudes fold into their absolute value; the type alone
	// carries direction.
	n, err := Normalize("IN", -7, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, n.Count)

	// Fractional counts truncate.
	n, err = Normalize("IN", 3.9, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n.Count)

	for _, count := range []float64{0, 0.4, -0.9, math.NaN(), math.Inf(1)} {
		_, err := Normalize("IN", count, nil)
		assert.True(t, apperrors.Is(err, apperrors.CodeInvalidQuantity), "count=%v", count)
	}
}

func TestNormalizeInDiscardsPrice(t *testing.T) {
	n, err := Normalize("IN", 5, floatPtr(9999))
	require.NoError(t, err)
	assert.Nil(t, n.Price)
}

func TestNormalizePurchaseRequiresPrice(t *testing.T) {
	_, err := Normalize("PURCHASE", 5, nil)
	assert.True(t, apperrors.Is(err, apperrors.CodePriceRequired))

	_, err = Normalize("PURCHASE", 5, floatPtr(0))
	assert.True(t, apperrors.Is(err, apperrors.CodePriceRequired))

	_, err = Normalize("PURCHASE", 5, floatPtr(-10))
	assert.True(t, apperrors.Is(err, apperrors.CodePriceRequired))

	n, err := Normalize("PURCHASE", 5, floatPtr(1500.75))
	require.NoError(t, err)
	require.NotNil(t, n.Price)
	assert.Equal(t, int64(1500), *n.Price)
}

func TestNormalizeOutPrice(t *testing.T) {
	n, err := Normalize("OUT", 2, nil)
	require.NoError(t, err)
	assert.Nil(t, n.Price)

	n, err = Normalize("OUT", 2, floatPtr(0))
	require.NoError(t, err)
	require.NotNil(t, n.Price)
	assert.Equal(t, int64(0), *n.Price)

	_, err = Normalize("OUT", 2, floatPtr(-1))
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidPrice))
}

func TestEnsureSufficient(t *testing.T) {
	assert.NoError(t, EnsureSufficient(Totals{Stock: 10}, 10))
	assert.NoError(t, EnsureSufficient(Totals{Stock: 10}, 3))

	err := EnsureSufficient(Totals{Stock: 2}, 5)
	require.True(t, apperrors.Is(err, apperrors.CodeInsufficientStock))

	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 2, appErr.Details["stock"])
	assert.Equal(t, 5, appErr.Details["requested"])
}
