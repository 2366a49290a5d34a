// internal/services/warehouse_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Jiu-020812/orange-fanta-back/internal/apperrors"
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
	"github.com/Jiu-020812/orange-fanta-back/internal/utils"
)

type WarehouseService struct {
	db *gorm.DB
}

type WarehouseRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Location string `json:"location,omitempty" validate:"omitempty,max=255"`
	Memo     string `json:"memo,omitempty"`
}

type SetWarehouseStockRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"min=0"`
}

func NewWarehouseService(db *gorm.DB) *WarehouseService {
	return &WarehouseService{db: db}
}

func (s *WarehouseService) ListWarehouses(userID uuid.UUID) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&warehouses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch warehouses: %w", err)
	}
	return warehouses, nil
}

func (s *WarehouseService) CreateWarehouse(userID uuid.UUID, req *WarehouseRequest) (*models.Warehouse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	warehouse := &models.Warehouse{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Location: req.Location,
		Memo:     req.Memo,
	}
	if err := s.db.Create(warehouse).Error; err != nil {
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}
	return warehouse, nil
}

func (s *WarehouseService) UpdateWarehouse(userID, warehouseID uuid.UUID, req *WarehouseRequest) (*models.Warehouse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	warehouse, err := s.getWarehouse(userID, warehouseID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":     strings.TrimSpace(req.Name),
		"location": req.Location,
		"memo":     req.Memo,
	}
	if err := s.db.Model(warehouse).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update warehouse: %w", err)
	}
	return warehouse, nil
}

func (s *WarehouseService) DeleteWarehouse(userID, warehouseID uuid.UUID) error {
	warehouse, err := s.getWarehouse(userID, warehouseID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND warehouse_id = ?", userID, warehouseID).
			Delete(&models.WarehouseStock{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete warehouse stocks: %w", err)
		}
		if err := tx.Delete(warehouse).Error; err != nil {
			return fmt.Errorf("failed to delete warehouse: %w", err)
		}
		return nil
	})
}

func (s *WarehouseService) ListStocks(userID, warehouseID uuid.UUID) ([]models.WarehouseStock, error) {
	if _, err := s.getWarehouse(userID, warehouseID); err != nil {
		return nil, err
	}

	var stocks []models.WarehouseStock
	err := s.db.Where("user_id = ? AND warehouse_id = ?", userID, warehouseID).
		Preload("Item").
		Find(&stocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch warehouse stocks: %w", err)
	}
	return stocks, nil
}

// SetStock upserts the manual stock position of one item at one
// warehouse. A zero quantity removes the position.
func (s *WarehouseService) SetStock(userID, warehouseID uuid.UUID, req *SetWarehouseStockRequest) (*models.WarehouseStock, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.getWarehouse(userID, warehouseID); err != nil {
		return nil, err
	}

	var itemCount int64
	err := s.db.Model(&models.Item{}).
		Where("id = ? AND user_id = ?", req.ItemID, userID).
		Count(&itemCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check item: %w", err)
	}
	if itemCount == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "item not found")
	}

	var stock models.WarehouseStock
	err = s.db.Where("user_id = ? AND warehouse_id = ? AND item_id = ?",
		userID, warehouseID, req.ItemID).First(&stock).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if req.Quantity == 0 {
			return nil, nil
		}
		stock = models.WarehouseStock{
			UserID:      userID,
			WarehouseID: warehouseID,
			ItemID:      req.ItemID,
			Quantity:    req.Quantity,
		}
		if err := s.db.Create(&stock).Error; err != nil {
			return nil, fmt.Errorf("failed to create warehouse stock: %w", err)
		}
		return &stock, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Quantity == 0 {
		if err := s.db.Delete(&stock).Error; err != nil {
			return nil, fmt.Errorf("failed to remove warehouse stock: %w", err)
		}
		return nil, nil
	}

	if err := s.db.Model(&stock).Update("quantity", req.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update warehouse stock: %w", err)
	}
	return &stock, nil
}

func (s *WarehouseService) getWarehouse(userID, warehouseID uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := s.db.Where("id = ? AND user_id = ?", warehouseID, userID).First(&warehouse).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "warehouse not found")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &warehouse, nil
}
