// internal/models/channel.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryPolicy is the per-item channel visibility configuration. It is
// created lazily on the first policy write; while absent, defaults apply
// (NORMAL mode, buffer 1, min visible 1, no exclusive channel).
type InventoryPolicy struct {
	BaseModel
	UserID            uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	ItemID            uuid.UUID        `json:"item_id" gorm:"type:uuid;not null;uniqueIndex"`
	Mode              PolicyMode       `json:"mode" gorm:"type:varchar(20);default:'NORMAL'"`
	Buffer            int              `json:"buffer" gorm:"default:1"`
	MinVisible        int              `json:"min_visible" gorm:"default:1"`
	ExclusiveProvider *ChannelProvider `json:"exclusive_provider,omitempty" gorm:"type:varchar(20)"`
}

// ChannelListing maps one (user, item) pair to a product/option on one
// external channel. At most one active listing per (user, provider, item).
type ChannelListing struct {
	BaseModel
	UserID            uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_channel_listings_key"`
	Provider          ChannelProvider `json:"provider" gorm:"type:varchar(20);not null;uniqueIndex:idx_channel_listings_key"`
	ItemID            uuid.UUID       `json:"item_id" gorm:"type:uuid;not null;uniqueIndex:idx_channel_listings_key"`
	ExternalProductID string          `json:"external_product_id" gorm:"size:100;not null"`
	ExternalOptionID  string          `json:"external_option_id" gorm:"size:100"`
	Active            bool            `json:"active" gorm:"default:true"`
}

// SyncJob is one durable unit of "publish target_qty for this listing".
// Unique per (user, provider, item): re-enqueueing the same triple
// overwrites the pending target instead of creating a duplicate row.
type SyncJob struct {
	BaseModel
	UserID    uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_sync_jobs_key"`
	Provider  ChannelProvider `json:"provider" gorm:"type:varchar(20);not null;uniqueIndex:idx_sync_jobs_key"`
	ItemID    uuid.UUID       `json:"item_id" gorm:"type:uuid;not null;uniqueIndex:idx_sync_jobs_key"`
	ListingID uuid.UUID       `json:"listing_id" gorm:"type:uuid;not null"`
	TargetQty int             `json:"target_qty" gorm:"not null"`
	Status    SyncJobStatus   `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	Attempts  int             `json:"attempts" gorm:"default:0"`
	LastError string          `json:"last_error" gorm:"type:text"`
	NextRunAt time.Time       `json:"next_run_at" gorm:"not null;index"`
	LockedAt  *time.Time      `json:"locked_at,omitempty"`
}
