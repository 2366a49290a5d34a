// internal/services/item_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Jiu-020812/orange-fanta-back/internal/apperrors"
	"github.com/Jiu-020812/orange-fanta-back/internal/ledger"
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
	"github.com/Jiu-020812/orange-fanta-back/internal/utils"
)

type ItemService struct {
	db *gorm.DB
}

type CreateItemRequest struct {
	Name              string     `json:"name" validate:"required,min=1,max=255"`
	Variant           string     `json:"variant,omitempty" validate:"omitempty,max=100"`
	ImageURL          string     `json:"image_url,omitempty" validate:"omitempty,max=500"`
	Barcode           *string    `json:"barcode,omitempty" validate:"omitempty,max=100"`
	SKU               *string    `json:"sku,omitempty" validate:"omitempty,max=100"`
	CategoryID        *uuid.UUID `json:"category_id,omitempty"`
	LowStockAlert     bool       `json:"low_stock_alert,omitempty"`
	LowStockThreshold int        `json:"low_stock_threshold,omitempty" validate:"min=0"`
}

type UpdateItemRequest struct {
	Name              *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Variant           *string    `json:"variant,omitempty" validate:"omitempty,max=100"`
	ImageURL          *string    `json:"image_url,omitempty" validate:"omitempty,max=500"`
	Barcode           *string    `json:"barcode,omitempty" validate:"omitempty,max=100"`
	SKU               *string    `json:"sku,omitempty" validate:"omitempty,max=100"`
	CategoryID        *uuid.UUID `json:"category_id,omitempty"`
	LowStockAlert     *bool      `json:"low_stock_alert,omitempty"`
	LowStockThreshold *int       `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
}

// ItemDetail is an item with its ledger recomputed from the full movement
// history; any cached stock figure elsewhere is a denormalization, never
// the authority.
type ItemDetail struct {
	Item   models.Item   `json:"item"`
	Totals ledger.Totals `json:"totals"`
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

func (s *ItemService) CreateItem(userID uuid.UUID, req *CreateItemRequest) (*models.Item, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.checkUnique(userID, uuid.Nil, req.Barcode, req.SKU); err != nil {
		return nil, err
	}
	if err := s.checkCategory(userID, req.CategoryID); err != nil {
		return nil, err
	}

	item := &models.Item{
		UserID:            userID,
		Name:              strings.TrimSpace(req.Name),
		Variant:           req.Variant,
		ImageURL:          req.ImageURL,
		Barcode:           normalizeCode(req.Barcode),
		SKU:               normalizeCode(req.SKU),
		CategoryID:        req.CategoryID,
		LowStockAlert:     req.LowStockAlert,
		LowStockThreshold: req.LowStockThreshold,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.db.Preload("Category").Where("id = ?", item.ID).First(item)

	return item, nil
}

func (s *ItemService) GetItem(userID, itemID uuid.UUID) (*ItemDetail, error) {
	var item models.Item
	err := s.db.Preload("Category").Preload("Policy").Preload("Listings").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var movements []models.Movement
	if err := s.db.Where("user_id = ? AND item_id = ?", userID, itemID).Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch movements: %w", err)
	}

	return &ItemDetail{Item: item, Totals: ledger.Calculate(movements)}, nil
}

func (s *ItemService) ListItems(userID uuid.UUID, params utils.PaginationParams, categoryID *uuid.UUID) ([]models.Item, int64, error) {
	query := s.db.Model(&models.Item{}).Where("user_id = ?", userID).Preload("Category")

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(variant) LIKE ? OR LOWER(barcode) LIKE ? OR LOWER(sku) LIKE ?",
			term, term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch items: %w", err)
	}

	return items, total, nil
}

func (s *ItemService) UpdateItem(userID, itemID uuid.UUID, req *UpdateItemRequest) (*models.Item, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var item models.Item
	err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.checkUnique(userID, itemID, req.Barcode, req.SKU); err != nil {
		return nil, err
	}
	if err := s.checkCategory(userID, req.CategoryID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Variant != nil {
		updates["variant"] = *req.Variant
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Barcode != nil {
		updates["barcode"] = normalizeCode(req.Barcode)
	}
	if req.SKU != nil {
		updates["sku"] = normalizeCode(req.SKU)
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.LowStockAlert != nil {
		updates["low_stock_alert"] = *req.LowStockAlert
	}
	if req.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *req.LowStockThreshold
	}

	if len(updates) > 0 {
		if err := s.db.Model(&item).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update item: %w", err)
		}
	}

	s.db.Preload("Category").Where("id = ?", itemID).First(&item)

	return &item, nil
}

// DeleteItem removes the item and everything scoped to it: movements,
// policy, listings, sync jobs, and warehouse positions.
func (s *ItemService) DeleteItem(userID, itemID uuid.UUID) error {
	var item models.Item
	err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.New(apperrors.CodeNotFound, "item not found")
	}
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		scoped := "user_id = ? AND item_id = ?"
		if err := tx.Where(scoped, userID, itemID).Delete(&models.Movement{}).Error; err != nil {
			return fmt.Errorf("failed to delete movements: %w", err)
		}
		if err := tx.Where(scoped, userID, itemID).Delete(&models.InventoryPolicy{}).Error; err != nil {
			return fmt.Errorf("failed to delete policy: %w", err)
		}
		if err := tx.Where(scoped, userID, itemID).Delete(&models.ChannelListing{}).Error; err != nil {
			return fmt.Errorf("failed to delete listings: %w", err)
		}
		if err := tx.Where(scoped, userID, itemID).Delete(&models.SyncJob{}).Error; err != nil {
			return fmt.Errorf("failed to delete sync jobs: %w", err)
		}
		if err := tx.Where(scoped, userID, itemID).Delete(&models.WarehouseStock{}).Error; err != nil {
			return fmt.Errorf("failed to delete warehouse stocks: %w", err)
		}
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		return nil
	})
}

// checkUnique enforces per-user uniqueness of barcode and SKU. excludeID
// skips the item being updated.
func (s *ItemService) checkUnique(userID, excludeID uuid.UUID, barcode, sku *string) error {
	check := func(column string, value *string) error {
		if normalizeCode(value) == nil {
			return nil
		}
		query := s.db.Model(&models.Item{}).
			Where("user_id = ? AND "+column+" = ?", userID, *value)
		if excludeID != uuid.Nil {
			query = query.Where("id <> ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check %s uniqueness: %w", column, err)
		}
		if count > 0 {
			return apperrors.New(apperrors.CodeDuplicate, "another item already uses this "+column)
		}
		return nil
	}

	if err := check("barcode", barcode); err != nil {
		return err
	}
	return check("sku", sku)
}

func (s *ItemService) checkCategory(userID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	var count int64
	err := s.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", *categoryID, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if count == 0 {
		return apperrors.New(apperrors.CodeNotFound, "category not found")
	}
	return nil
}

func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
