// internal/services/movement_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Jiu-020812/orange-fanta-back/internal/apperrors"
	"github.com/Jiu-020812/orange-fanta-back/internal/ledger"
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
	"github.com/Jiu-020812/orange-fanta-back/internal/store"
	"github.com/Jiu-020812/orange-fanta-back/internal/utils"
)

type MovementService struct {
	store               store.Store
	syncService         *SyncService
	notificationService *NotificationService
}

type CreateMovementRequest struct {
	Type  string   `json:"type" validate:"required"`
	Count float64  `json:"count" validate:"required"`
	Price *float64 `json:"price,omitempty"`
	Date  string   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Memo  string   `json:"memo,omitempty"`
}

type UpdateMovementRequest struct {
	Type  string   `json:"type" validate:"required"`
	Count float64  `json:"count" validate:"required"`
	Price *float64 `json:"price,omitempty"`
	Date  string   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Memo  *string  `json:"memo,omitempty"`
}

type ArriveRequest struct {
	Count *int   `json:"count,omitempty"`
	Date  string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Memo  string `json:"memo,omitempty"`
}

// MovementResult is a mutated movement plus the ledger recomputed from the
// full history afterwards.
type MovementResult struct {
	Movement *models.Movement `json:"movement"`
	Totals   ledger.Totals    `json:"totals"`
}

type ArrivalResult struct {
	// Movement is nil when the purchase was already fully arrived and the
	// call was an idempotent no-op.
	Movement  *models.Movement `json:"movement,omitempty"`
	Totals    ledger.Totals    `json:"totals"`
	Remaining int              `json:"remaining"`
}

type MovementListResult struct {
	Movements []models.Movement `json:"movements"`
	Totals    ledger.Totals     `json:"totals"`
}

func NewMovementService(st store.Store, syncService *SyncService, notificationService *NotificationService) *MovementService {
	return &MovementService{
		store:               st,
		syncService:         syncService,
		notificationService: notificationService,
	}
}

func (s *MovementService) ListMovements(userID, itemID uuid.UUID) (*MovementListResult, error) {
	if _, err := s.requireItem(userID, itemID); err != nil {
		return nil, err
	}

	movements, err := s.store.ListMovements(userID, itemID)
	if err != nil {
		return nil, err
	}

	return &MovementListResult{
		Movements: movements,
		Totals:    ledger.Calculate(movements),
	}, nil
}

func (s *MovementService) CreateMovement(userID, itemID uuid.UUID, req *CreateMovementRequest) (*MovementResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	item, err := s.requireItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	normalized, err := ledger.Normalize(req.Type, req.Count, req.Price)
	if err != nil {
		return nil, err
	}

	// OUT must not exceed the stock recomputed from the current history.
	if normalized.Type == models.MovementOut {
		movements, err := s.store.ListMovements(userID, itemID)
		if err != nil {
			return nil, err
		}
		if err := ledger.EnsureSufficient(ledger.Calculate(movements), normalized.Count); err != nil {
			return nil, err
		}
	}

	occurredAt, err := parseMovementDate(req.Date)
	if err != nil {
		return nil, err
	}

	movement := &models.Movement{
		UserID:     userID,
		ItemID:     itemID,
		Type:       normalized.Type,
		Count:      normalized.Count,
		Price:      normalized.Price,
		OccurredAt: occurredAt,
		Memo:       req.Memo,
	}
	if err := s.store.CreateMovement(movement); err != nil {
		return nil, err
	}

	totals, err := s.recompute(userID, itemID)
	if err != nil {
		return nil, err
	}

	go s.afterStockChange(item, totals)

	return &MovementResult{Movement: movement, Totals: totals}, nil
}

func (s *MovementService) UpdateMovement(userID, movementID uuid.UUID, req *UpdateMovementRequest) (*MovementResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	movement, err := s.store.GetMovement(userID, movementID)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "movement not found")
	}

	item, err := s.requireItem(userID, movement.ItemID)
	if err != nil {
		return nil, err
	}

	normalized, err := ledger.Normalize(req.Type, req.Count, req.Price)
	if err != nil {
		return nil, err
	}

	// Sufficiency is checked against the ledger without this movement, so
	// shrinking its own prior OUT contribution frees up headroom.
	if normalized.Type == models.MovementOut {
		movements, err := s.store.ListMovements(userID, movement.ItemID)
		if err != nil {
			return nil, err
		}
		others := movements[:0:0]
		for _, m := range movements {
			if m.ID != movement.ID {
				others = append(others, m)
			}
		}
		if err := ledger.EnsureSufficient(ledger.Calculate(others), normalized.Count); err != nil {
			return nil, err
		}
	}

	movement.Type = normalized.Type
	movement.Count = normalized.Count
	movement.Price = normalized.Price
	if normalized.Type != models.MovementIn {
		// fulfillsId is only meaningful on IN movements.
		movement.FulfillsID = nil
	}
	if req.Date != "" {
		occurredAt, err := parseMovementDate(req.Date)
		if err != nil {
			return nil, err
		}
		movement.OccurredAt = occurredAt
	}
	if req.Memo != nil {
		movement.Memo = *req.Memo
	}

	if err := s.store.UpdateMovement(movement); err != nil {
		return nil, err
	}

	totals, err := s.recompute(userID, movement.ItemID)
	if err != nil {
		return nil, err
	}

	go s.afterStockChange(item, totals)

	return &MovementResult{Movement: movement, Totals: totals}, nil
}

func (s *MovementService) DeleteMovement(userID, movementID uuid.UUID) (*ledger.Totals, error) {
	movement, err := s.store.GetMovement(userID, movementID)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "movement not found")
	}

	item, err := s.requireItem(userID, movement.ItemID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteMovement(userID, movementID); err != nil {
		return nil, err
	}

	totals, err := s.recompute(userID, movement.ItemID)
	if err != nil {
		return nil, err
	}

	go s.afterStockChange(item, totals)

	return &totals, nil
}

// Arrive records a partial or full receipt against an outstanding PURCHASE
// movement. The clamp in ledger.ClampArrival is the sole guard keeping the
// sum of linked IN counts within the ordered count.
func (s *MovementService) Arrive(userID, purchaseID uuid.UUID, req *ArriveRequest) (*ArrivalResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	purchase, err := s.store.GetMovement(userID, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "purchase movement not found")
	}
	if purchase.Type != models.MovementPurchase {
		return nil, apperrors.New(apperrors.CodeNotAPurchase, "movement is not a purchase")
	}

	arrivedSoFar, err := s.store.SumArrivals(userID, purchaseID)
	if err != nil {
		return nil, err
	}

	remaining := ledger.Remaining(purchase.Count, arrivedSoFar)
	if remaining == 0 {
		totals, err := s.recompute(userID, purchase.ItemID)
		if err != nil {
			return nil, err
		}
		return &ArrivalResult{Totals: totals, Remaining: 0}, nil
	}

	count := ledger.ClampArrival(remaining, req.Count)

	occurredAt, err := parseMovementDate(req.Date)
	if err != nil {
		return nil, err
	}

	movement := &models.Movement{
		UserID:     userID,
		ItemID:     purchase.ItemID,
		Type:       models.MovementIn,
		Count:      count,
		Price:      nil,
		OccurredAt: occurredAt,
		Memo:       req.Memo,
		FulfillsID: &purchaseID,
	}
	if err := s.store.CreateMovement(movement); err != nil {
		return nil, err
	}

	totals, err := s.recompute(userID, purchase.ItemID)
	if err != nil {
		return nil, err
	}

	item, err := s.requireItem(userID, purchase.ItemID)
	if err == nil {
		go s.afterStockChange(item, totals)
	}

	return &ArrivalResult{
		Movement:  movement,
		Totals:    totals,
		Remaining: remaining - count,
	}, nil
}

func (s *MovementService) requireItem(userID, itemID uuid.UUID) (*models.Item, error) {
	item, err := s.store.GetItem(userID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "item not found")
	}
	return item, nil
}

func (s *MovementService) recompute(userID, itemID uuid.UUID) (ledger.Totals, error) {
	movements, err := s.store.ListMovements(userID, itemID)
	if err != nil {
		return ledger.Totals{}, err
	}
	return ledger.Calculate(movements), nil
}

// afterStockChange runs the decoupled side effects of a stock mutation:
// channel sync enqueueing and the low-stock alert. Failures here never
// reach the caller of the mutation.
func (s *MovementService) afterStockChange(item *models.Item, totals ledger.Totals) {
	if s.syncService != nil {
		if _, err := s.syncService.EnqueueForItem(item.UserID, item.ID); err != nil {
			logrus.WithError(err).WithField("item_id", item.ID).Error("Failed to enqueue channel sync")
		}
	}

	if s.notificationService != nil && item.LowStockAlert && totals.Stock <= item.LowStockThreshold {
		if err := s.notificationService.SendLowStockAlert(item, totals.Stock); err != nil {
			logrus.WithError(err).WithField("item_id", item.ID).Warn("Failed to send low stock alert")
		}
	}
}

// parseMovementDate parses a YYYY-MM-DD date, defaulting to today. Time of
// day is normalized away; movements carry date-only granularity.
func parseMovementDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.CodeInvalidDate, "date must be formatted YYYY-MM-DD")
	}
	return parsed, nil
}
