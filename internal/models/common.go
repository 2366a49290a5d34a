// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Enums
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// MovementType is the kind of a stock ledger entry. IN adds to on-hand
// stock, OUT subtracts from it, PURCHASE records an outstanding supplier
// order and never affects on-hand stock until it arrives as IN movements.
type MovementType string

const (
	MovementIn       MovementType = "IN"
	MovementOut      MovementType = "OUT"
	MovementPurchase MovementType = "PURCHASE"
)

// PolicyMode controls how central stock is exposed to sales channels.
type PolicyMode string

const (
	PolicyModeNormal    PolicyMode = "NORMAL"
	PolicyModeExclusive PolicyMode = "EXCLUSIVE"
)

// ChannelProvider identifies an external sales channel.
type ChannelProvider string

const (
	ProviderNaver    ChannelProvider = "NAVER"
	ProviderCoupang  ChannelProvider = "COUPANG"
	ProviderElevenst ChannelProvider = "ELEVENST"
	ProviderKream    ChannelProvider = "KREAM"
	ProviderEtc      ChannelProvider = "ETC"
)

type SyncJobStatus string

const (
	SyncJobPending   SyncJobStatus = "PENDING"
	SyncJobRunning   SyncJobStatus = "RUNNING"
	SyncJobSucceeded SyncJobStatus = "SUCCEEDED"
	SyncJobFailed    SyncJobStatus = "FAILED"
)
