// internal/models/movement.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Movement is one append-only stock ledger entry. Type-dependent rules:
// IN never carries a price, OUT may carry a non-negative price, PURCHASE
// requires a positive price. FulfillsID links an IN movement to the
// PURCHASE movement it (partially) fulfills and is only ever set by the
// arrival flow, never by direct user input.
type Movement struct {
	BaseModel
	UserID     uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID    `json:"item_id" gorm:"type:uuid;not null;index"`
	Type       MovementType `json:"type" gorm:"type:varchar(10);not null;index"`
	Count      int          `json:"count" gorm:"not null"`
	Price      *int64       `json:"price,omitempty"`
	OccurredAt time.Time    `json:"occurred_at" gorm:"not null;index"`
	Memo       string       `json:"memo" gorm:"type:text"`
	FulfillsID *uuid.UUID   `json:"fulfills_id,omitempty" gorm:"type:uuid;index"`

	Item Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}
