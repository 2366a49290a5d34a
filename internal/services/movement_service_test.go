// internal/services/movement_service_test.go
package services

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jiu-020812/orange-fanta-back/internal/apperrors"
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
	"github.com/Jiu-020812/orange-fanta-back/internal/store"
)

func newMovementFixture(t *testing.T) (*MovementService, *store.MemoryStore, uuid.UUID, models.Item) {
	t.Helper()
	st := store.NewMemoryStore()
	userID := uuid.New()
	item := st.PutItem(models.Item{
		UserID:  userID,
		Name:    gofakeit.ProductName(),
		Variant: gofakeit.Color(),
	})
	return NewMovementService(st, nil, nil), st, userID, item
}

func fptr(f float64) *float64 { return &f }
func iptr(i int) *int         { return &i }

func TestCreateMovementIn(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	result, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "IN", Count: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MovementIn, result.Movement.Type)
	assert.Equal(t, 10, result.Movement.Count)
	assert.Equal(t, 10, result.Totals.Stock)
	assert.Equal(t, 0, result.Totals.PendingIn)
}

func TestCreateMovementInDiscardsPrice(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	result, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "IN", Count: 5, Price: fptr(12000),
	})
	require.NoError(t, err)
	assert.Nil(t, result.Movement.Price)
}

func TestCreateMovementOutInsufficientStock(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	_, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "IN", Count: 3,
	})
	require.NoError(t, err)

	_, err = svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "OUT", Count: 5,
	})
	require.True(t, apperrors.Is(err, apperrors.CodeInsufficientStock))

	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 3, appErr.Details["stock"])
	assert.Equal(t, 5, appErr.Details["requested"])

	// An OUT equal to stock is fine; it drains to zero.
	result, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "OUT", Count: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Totals.Stock)
}

func TestCreateMovementPurchaseDoesNotTouchStock(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	result, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "PURCHASE", Count: 20, Price: fptr(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Totals.Stock)
	assert.Equal(t, 20, result.Totals.PendingIn)
}

func TestCreateMovementUnknownItem(t *testing.T) {
	svc, _, userID, _ := newMovementFixture(t)

	_, err := svc.CreateMovement(userID, uuid.New(), &CreateMovementRequest{
		Type: "IN", Count: 1,
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestCreateMovementRejectsBadDate(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	_, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "IN", Count: 1, Date: "08/30/2026",
	})
	assert.Error(t, err)
}

// Shrinking an OUT movement must evaluate sufficiency against the ledger
// without that movement's own prior contribution.
func TestUpdateMovementExcludesSelfFromSufficiency(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	_, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "IN", Count: 10,
	})
	require.NoError(t, err)

	out, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "OUT", Count: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 0, out.Totals.Stock)

	// With stock drained to zero, any edit of this OUT would fail if its
	// own 10 units still counted against availability.
	updated, err := svc.UpdateMovement(userID, out.Movement.ID, &UpdateMovementRequest{
		Type: "OUT", Count: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Totals.Stock)

	// But it can never exceed what the rest of the history provides.
	_, err = svc.UpdateMovement(userID, out.Movement.ID, &UpdateMovementRequest{
		Type: "OUT", Count: 11,
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeInsufficientStock))
}

func TestUpdateMovementClearsFulfillsOnTypeChange(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	// Extra stock so the retyped movement passes the sufficiency check,
	// which excludes its own prior contribution.
	_, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "IN", Count: 10,
	})
	require.NoError(t, err)

	purchase, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "PURCHASE", Count: 5, Price: fptr(100),
	})
	require.NoError(t, err)

	arrival, err := svc.Arrive(userID, purchase.Movement.ID, &ArriveRequest{Count: iptr(5)})
	require.NoError(t, err)
	require.NotNil(t, arrival.Movement.FulfillsID)

	updated, err := svc.UpdateMovement(userID, arrival.Movement.ID, &UpdateMovementRequest{
		Type: "OUT", Count: 2,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Movement.FulfillsID)
}

func TestDeleteMovementRecomputesTotals(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	in, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "IN", Count: 10,
	})
	require.NoError(t, err)

	totals, err := svc.DeleteMovement(userID, in.Movement.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, totals.Stock)
}

func TestArrivePartialThenBulk(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	purchase, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "PURCHASE", Count: 10, Price: fptr(500),
	})
	require.NoError(t, err)

	partial, err := svc.Arrive(userID, purchase.Movement.ID, &ArriveRequest{Count: iptr(4)})
	require.NoError(t, err)
	require.NotNil(t, partial.Movement)
	assert.Equal(t, models.MovementIn, partial.Movement.Type)
	assert.Equal(t, 4, partial.Movement.Count)
	assert.Nil(t, partial.Movement.Price)
	assert.Equal(t, 6, partial.Remaining)
	assert.Equal(t, 4, partial.Totals.Stock)
	assert.Equal(t, 6, partial.Totals.PendingIn)

	// No count takes everything still owed.
	bulk, err := svc.Arrive(userID, purchase.Movement.ID, &ArriveRequest{})
	require.NoError(t, err)
	require.NotNil(t, bulk.Movement)
	assert.Equal(t, 6, bulk.Movement.Count)
	assert.Equal(t, 0, bulk.Remaining)
	assert.Equal(t, 10, bulk.Totals.Stock)
	assert.Equal(t, 0, bulk.Totals.PendingIn)
}

func TestArriveClampsOverRequest(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	purchase, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "PURCHASE", Count: 3, Price: fptr(500),
	})
	require.NoError(t, err)

	result, err := svc.Arrive(userID, purchase.Movement.ID, &ArriveRequest{Count: iptr(50)})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Movement.Count)
	assert.Equal(t, 0, result.Remaining)
}

func TestArriveIsIdempotentWhenFullyArrived(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	purchase, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "PURCHASE", Count: 5, Price: fptr(500),
	})
	require.NoError(t, err)

	_, err = svc.Arrive(userID, purchase.Movement.ID, &ArriveRequest{})
	require.NoError(t, err)

	repeat, err := svc.Arrive(userID, purchase.Movement.ID, &ArriveRequest{})
	require.NoError(t, err)
	assert.Nil(t, repeat.Movement)
	assert.Equal(t, 0, repeat.Remaining)
	assert.Equal(t, 5, repeat.Totals.Stock)
}

func TestArriveRejectsNonPurchase(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	in, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{
		Type: "IN", Count: 5,
	})
	require.NoError(t, err)

	_, err = svc.Arrive(userID, in.Movement.ID, &ArriveRequest{})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotAPurchase))
}

func TestListMovementsReturnsTotals(t *testing.T) {
	svc, _, userID, item := newMovementFixture(t)

	_, err := svc.CreateMovement(userID, item.ID, &CreateMovementRequest{Type: "IN", Count: 7})
	require.NoError(t, err)
	_, err = svc.CreateMovement(userID, item.ID, &CreateMovementRequest{Type: "OUT", Count: 2})
	require.NoError(t, err)

	result, err := svc.ListMovements(userID, item.ID)
	require.NoError(t, err)
	assert.Len(t, result.Movements, 2)
	assert.Equal(t, 5, result.Totals.Stock)
}
