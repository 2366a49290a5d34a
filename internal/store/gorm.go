// internal/store/gorm.go
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

// GormStore is the production Store backed by PostgreSQL through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetItem(userID, itemID uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &item, nil
}

func (s *GormStore) ListMovements(userID, itemID uuid.UUID) ([]models.Movement, error) {
	var movements []models.Movement
	err := s.db.Where("user_id = ? AND item_id = ?", userID, itemID).
		Order("occurred_at DESC, created_at DESC").
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movements: %w", err)
	}
	return movements, nil
}

func (s *GormStore) GetMovement(userID, movementID uuid.UUID) (*models.Movement, error) {
	var movement models.Movement
	err := s.db.Where("id = ? AND user_id = ?", movementID, userID).First(&movement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &movement, nil
}

func (s *GormStore) CreateMovement(m *models.Movement) error {
	if err := s.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create movement: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateMovement(m *models.Movement) error {
	if err := s.db.Save(m).Error; err != nil {
		return fmt.Errorf("failed to update movement: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteMovement(userID, movementID uuid.UUID) error {
	err := s.db.Where("id = ? AND user_id = ?", movementID, userID).
		Delete(&models.Movement{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	return nil
}

func (s *GormStore) SumArrivals(userID, purchaseID uuid.UUID) (int, error) {
	var total int64
	err := s.db.Model(&models.Movement{}).
		Where("user_id = ? AND type = ? AND fulfills_id = ?", userID, models.MovementIn, purchaseID).
		Select("COALESCE(SUM(count), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum arrivals: %w", err)
	}
	return int(total), nil
}

func (s *GormStore) GetPolicy(userID, itemID uuid.UUID) (*models.InventoryPolicy, error) {
	var policy models.InventoryPolicy
	err := s.db.Where("user_id = ? AND item_id = ?", userID, itemID).First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &policy, nil
}

func (s *GormStore) SavePolicy(p *models.InventoryPolicy) error {
	if err := s.db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to save policy: %w", err)
	}
	return nil
}

func (s *GormStore) ListActiveListings(userID, itemID uuid.UUID) ([]models.ChannelListing, error) {
	var listings []models.ChannelListing
	err := s.db.Where("user_id = ? AND item_id = ? AND active = ?", userID, itemID, true).
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	return listings, nil
}

func (s *GormStore) ListListings(userID, itemID uuid.UUID) ([]models.ChannelListing, error) {
	var listings []models.ChannelListing
	err := s.db.Where("user_id = ? AND item_id = ?", userID, itemID).
		Order("provider ASC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	return listings, nil
}

func (s *GormStore) CreateListing(l *models.ChannelListing) error {
	if err := s.db.Create(l).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteListing(userID, listingID uuid.UUID) error {
	err := s.db.Where("id = ? AND user_id = ?", listingID, userID).
		Delete(&models.ChannelListing{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return nil
}

func (s *GormStore) GetListing(userID, listingID uuid.UUID) (*models.ChannelListing, error) {
	var listing models.ChannelListing
	err := s.db.Where("id = ? AND user_id = ?", listingID, userID).First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &listing, nil
}

func (s *GormStore) UpsertJob(job *models.SyncJob) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.SyncJob
		err := tx.Where("user_id = ? AND provider = ? AND item_id = ?",
			job.UserID, job.Provider, job.ItemID).First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(job).Error; err != nil {
				return fmt.Errorf("failed to create sync job: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		// Overwrite the outstanding intent: newest target wins, retry
		// state starts over.
		updates := map[string]interface{}{
			"listing_id":  job.ListingID,
			"target_qty":  job.TargetQty,
			"status":      models.SyncJobPending,
			"attempts":    0,
			"last_error":  "",
			"next_run_at": job.NextRunAt,
			"locked_at":   nil,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to supersede sync job: %w", err)
		}
		*job = existing
		return nil
	})
}

func (s *GormStore) DueJobs(userID *uuid.UUID, now time.Time, limit int) ([]models.SyncJob, error) {
	query := s.db.Where("status = ? AND next_run_at <= ? AND locked_at IS NULL",
		models.SyncJobPending, now)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var jobs []models.SyncJob
	err := query.Order("next_run_at ASC, id ASC").Limit(limit).Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due jobs: %w", err)
	}
	return jobs, nil
}

func (s *GormStore) ClaimJob(jobID uuid.UUID, now time.Time) (bool, error) {
	// Conditional update is the sole mutual exclusion: only one runner can
	// move PENDING+unlocked to RUNNING+locked.
	result := s.db.Model(&models.SyncJob{}).
		Where("id = ? AND status = ? AND locked_at IS NULL", jobID, models.SyncJobPending).
		Updates(map[string]interface{}{
			"status":    models.SyncJobRunning,
			"locked_at": now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim job: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (s *GormStore) UpdateJob(job *models.SyncJob) error {
	updates := map[string]interface{}{
		"status":      job.Status,
		"attempts":    job.Attempts,
		"last_error":  job.LastError,
		"next_run_at": job.NextRunAt,
		"locked_at":   job.LockedAt,
	}
	if err := s.db.Model(&models.SyncJob{}).Where("id = ?", job.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

func (s *GormStore) ListJobs(userID, itemID uuid.UUID) ([]models.SyncJob, error) {
	var jobs []models.SyncJob
	err := s.db.Where("user_id = ? AND item_id = ?", userID, itemID).
		Order("updated_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return jobs, nil
}
