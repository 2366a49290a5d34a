// internal/store/store.go
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

// Store is the persistence contract the ledger and sync engines depend on.
// It is injected explicitly (never held as ambient global state) so the
// flows can run against the gorm implementation in production and the
// in-memory one in tests.
//
// Lookups return (nil, nil) when the row does not exist; callers decide
// whether absence is an error.
type Store interface {
	GetItem(userID, itemID uuid.UUID) (*models.Item, error)

	ListMovements(userID, itemID uuid.UUID) ([]models.Movement, error)
	GetMovement(userID, movementID uuid.UUID) (*models.Movement, error)
	CreateMovement(m *models.Movement) error
	UpdateMovement(m *models.Movement) error
	DeleteMovement(userID, movementID uuid.UUID) error
	// SumArrivals totals the IN counts recorded against one purchase.
	SumArrivals(userID, purchaseID uuid.UUID) (int, error)

	GetPolicy(userID, itemID uuid.UUID) (*models.InventoryPolicy, error)
	SavePolicy(p *models.InventoryPolicy) error

	ListActiveListings(userID, itemID uuid.UUID) ([]models.ChannelListing, error)
	ListListings(userID, itemID uuid.UUID) ([]models.ChannelListing, error)
	GetListing(userID, listingID uuid.UUID) (*models.ChannelListing, error)
	CreateListing(l *models.ChannelListing) error
	DeleteListing(userID, listingID uuid.UUID) error

	// UpsertJob creates or overwrites the single job keyed by
	// (user, provider, item); a newer target always supersedes an older
	// unprocessed one.
	UpsertJob(job *models.SyncJob) error
	// DueJobs lists PENDING, unlocked jobs due at or before now, ordered
	// by due time then id. A nil userID means all users.
	DueJobs(userID *uuid.UUID, now time.Time, limit int) ([]models.SyncJob, error)
	// ClaimJob atomically transitions PENDING+unlocked to RUNNING+locked.
	// It reports false when a concurrent runner claimed the job first.
	ClaimJob(jobID uuid.UUID, now time.Time) (bool, error)
	UpdateJob(job *models.SyncJob) error
	ListJobs(userID, itemID uuid.UUID) ([]models.SyncJob, error)
}
