// internal/models/item.go
package models

import (
	"github.com/google/uuid"
)

type Item struct {
	BaseModel
	UserID            uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Name              string     `json:"name" gorm:"size:255;not null"`
	Variant           string     `json:"variant" gorm:"size:100"`
	ImageURL          string     `json:"image_url" gorm:"size:500"`
	Barcode           *string    `json:"barcode,omitempty" gorm:"size:100"`
	SKU               *string    `json:"sku,omitempty" gorm:"size:100"`
	CategoryID        *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid;index"`
	LowStockAlert     bool       `json:"low_stock_alert" gorm:"default:false"`
	LowStockThreshold int        `json:"low_stock_threshold" gorm:"default:0"`

	// Relationships
	Category  *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Movements []Movement       `json:"movements,omitempty" gorm:"foreignKey:ItemID"`
	Policy    *InventoryPolicy `json:"policy,omitempty" gorm:"foreignKey:ItemID"`
	Listings  []ChannelListing `json:"listings,omitempty" gorm:"foreignKey:ItemID"`
}

type Category struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name   string    `json:"name" gorm:"size:100;not null"`
	Color  string    `json:"color" gorm:"size:20"`
}

type Warehouse struct {
	BaseModel
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name     string    `json:"name" gorm:"size:100;not null"`
	Location string    `json:"location" gorm:"size:255"`
	Memo     string    `json:"memo" gorm:"type:text"`
}

// WarehouseStock is a manual stock position: how many units of an item the
// user keeps at one warehouse. Positions are maintained by hand and are not
// derived from the movement ledger.
type WarehouseStock struct {
	BaseModel
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_warehouse_stocks_position"`
	WarehouseID uuid.UUID `json:"warehouse_id" gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stocks_position"`
	ItemID      uuid.UUID `json:"item_id" gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stocks_position"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`

	Warehouse Warehouse `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	Item      Item      `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}
