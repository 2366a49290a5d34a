// internal/services/sync_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Jiu-020812/orange-fanta-back/internal/apperrors"
	"github.com/Jiu-020812/orange-fanta-back/internal/channelsync"
	"github.com/Jiu-020812/orange-fanta-back/internal/ledger"
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
	"github.com/Jiu-020812/orange-fanta-back/internal/store"
	"github.com/Jiu-020812/orange-fanta-back/internal/utils"
)

// SyncService owns the channel-facing side of the system: visibility
// policies, channel listings, and the durable sync job queue.
type SyncService struct {
	store    store.Store
	registry *channelsync.Registry
}

type SetPolicyRequest struct {
	Mode              string  `json:"mode" validate:"required,oneof=NORMAL EXCLUSIVE"`
	Buffer            *int    `json:"buffer,omitempty" validate:"omitempty,min=0"`
	MinVisible        *int    `json:"min_visible,omitempty" validate:"omitempty,min=0"`
	ExclusiveProvider *string `json:"exclusive_provider,omitempty" validate:"omitempty,oneof=NAVER COUPANG ELEVENST KREAM ETC"`
}

type CreateListingRequest struct {
	Provider          string `json:"provider" validate:"required,oneof=NAVER COUPANG ELEVENST KREAM ETC"`
	ExternalProductID string `json:"external_product_id" validate:"required"`
	ExternalOptionID  string `json:"external_option_id,omitempty"`
}

// BatchResult aggregates one claim-and-run pass. Per-job errors live on
// the job rows, not here.
type BatchResult struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func NewSyncService(st store.Store, registry *channelsync.Registry) *SyncService {
	return &SyncService{store: st, registry: registry}
}

// EnqueueForItem recomputes the item's ledger and visibility targets and
// upserts one job per active listing. Returns the number of jobs written.
func (s *SyncService) EnqueueForItem(userID, itemID uuid.UUID) (int, error) {
	listings, err := s.store.ListActiveListings(userID, itemID)
	if err != nil {
		return 0, err
	}
	if len(listings) == 0 {
		return 0, nil
	}

	movements, err := s.store.ListMovements(userID, itemID)
	if err != nil {
		return 0, err
	}
	totals := ledger.Calculate(movements)

	policy, err := s.store.GetPolicy(userID, itemID)
	if err != nil {
		return 0, err
	}

	targets := channelsync.ComputeTargets(totals.Stock, policy, listings)
	now := time.Now()

	for _, target := range targets {
		job := &models.SyncJob{
			UserID:    userID,
			Provider:  target.Provider,
			ItemID:    itemID,
			ListingID: target.ListingID,
			TargetQty: target.TargetQty,
			Status:    models.SyncJobPending,
			Attempts:  0,
			NextRunAt: now,
		}
		if err := s.store.UpsertJob(job); err != nil {
			return 0, err
		}
	}

	return len(targets), nil
}

// RunDueJobs claims and executes up to limit due jobs. A nil userID drains
// across all users (the background worker); a concrete one drains a single
// user's queue (the HTTP surface).
func (s *SyncService) RunDueJobs(userID *uuid.UUID, limit int) (BatchResult, error) {
	var result BatchResult

	now := time.Now()
	jobs, err := s.store.DueJobs(userID, now, limit)
	if err != nil {
		return result, err
	}

	for i := range jobs {
		job := jobs[i]

		claimed, err := s.store.ClaimJob(job.ID, now)
		if err != nil {
			logrus.WithError(err).WithField("job_id", job.ID).Error("Failed to claim sync job")
			continue
		}
		if !claimed {
			// A concurrent runner got there first; move on.
			continue
		}
		job.Status = models.SyncJobRunning
		lockTime := now
		job.LockedAt = &lockTime

		result.Processed++
		if s.executeJob(&job) {
			result.Succeeded++
		} else {
			result.Failed++
		}

		if err := s.store.UpdateJob(&job); err != nil {
			logrus.WithError(err).WithField("job_id", job.ID).Error("Failed to persist sync job outcome")
		}
	}

	return result, nil
}

// executeJob invokes the channel adapter and applies the outcome to the
// claimed job in place. Reports success.
func (s *SyncService) executeJob(job *models.SyncJob) bool {
	listing, err := s.store.GetListing(job.UserID, job.ListingID)

	var updateErr error
	switch {
	case err != nil:
		updateErr = err
	case listing == nil:
		// The listing vanished between enqueue and claim; this consumes
		// an attempt like any other failure instead of crashing the batch.
		updateErr = fmt.Errorf("listing %s no longer exists", job.ListingID)
	default:
		res, adapterErr := s.registry.For(job.Provider).UpdateStock(channelsync.StockUpdate{
			Listing:   *listing,
			TargetQty: job.TargetQty,
		})
		if adapterErr != nil {
			updateErr = adapterErr
		} else if !res.OK {
			msg := res.Message
			if msg == "" {
				msg = "channel rejected the stock update"
			}
			updateErr = fmt.Errorf("%s", msg)
		}
	}

	if updateErr == nil {
		job.Status = models.SyncJobSucceeded
		job.LockedAt = nil
		job.LastError = ""
		return true
	}

	job.Attempts++
	job.NextRunAt = time.Now().Add(channelsync.RetryDelay(job.Attempts))
	if job.Attempts >= channelsync.MaxAttempts {
		job.Status = models.SyncJobFailed
	} else {
		job.Status = models.SyncJobPending
	}
	job.LockedAt = nil
	job.LastError = updateErr.Error()

	logrus.WithFields(logrus.Fields{
		"job_id":   job.ID,
		"provider": job.Provider,
		"attempts": job.Attempts,
		"status":   job.Status,
	}).WithError(updateErr).Warn("Channel sync attempt failed")

	return false
}

// EffectivePolicy returns the stored policy or the defaults that apply
// while none has been written.
func (s *SyncService) EffectivePolicy(userID, itemID uuid.UUID) (*models.InventoryPolicy, error) {
	if err := s.requireItem(userID, itemID); err != nil {
		return nil, err
	}

	policy, err := s.store.GetPolicy(userID, itemID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		policy = &models.InventoryPolicy{
			UserID:     userID,
			ItemID:     itemID,
			Mode:       models.PolicyModeNormal,
			Buffer:     1,
			MinVisible: 1,
		}
	}
	return policy, nil
}

// SetPolicy lazily creates the per-item policy on first write, then
// recomputes and re-enqueues the item's targets.
func (s *SyncService) SetPolicy(userID, itemID uuid.UUID, req *SetPolicyRequest) (*models.InventoryPolicy, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.requireItem(userID, itemID); err != nil {
		return nil, err
	}

	policy, err := s.store.GetPolicy(userID, itemID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		policy = &models.InventoryPolicy{
			UserID:     userID,
			ItemID:     itemID,
			Buffer:     1,
			MinVisible: 1,
		}
	}

	policy.Mode = models.PolicyMode(req.Mode)
	if req.Buffer != nil {
		policy.Buffer = *req.Buffer
	}
	if req.MinVisible != nil {
		policy.MinVisible = *req.MinVisible
	}
	if req.ExclusiveProvider != nil {
		provider := models.ChannelProvider(*req.ExclusiveProvider)
		policy.ExclusiveProvider = &provider
	} else if policy.Mode != models.PolicyModeExclusive {
		policy.ExclusiveProvider = nil
	}

	if err := s.store.SavePolicy(policy); err != nil {
		return nil, err
	}

	if _, err := s.EnqueueForItem(userID, itemID); err != nil {
		logrus.WithError(err).WithField("item_id", itemID).Error("Failed to enqueue sync after policy change")
	}

	return policy, nil
}

func (s *SyncService) ListListings(userID, itemID uuid.UUID) ([]models.ChannelListing, error) {
	if err := s.requireItem(userID, itemID); err != nil {
		return nil, err
	}
	return s.store.ListListings(userID, itemID)
}

func (s *SyncService) CreateListing(userID, itemID uuid.UUID, req *CreateListingRequest) (*models.ChannelListing, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.requireItem(userID, itemID); err != nil {
		return nil, err
	}

	provider := models.ChannelProvider(req.Provider)

	existing, err := s.store.ListListings(userID, itemID)
	if err != nil {
		return nil, err
	}
	for _, l := range existing {
		if l.Provider == provider {
			return nil, apperrors.New(apperrors.CodeDuplicate, "item already has a listing on this channel")
		}
	}

	listing := &models.ChannelListing{
		UserID:            userID,
		ItemID:            itemID,
		Provider:          provider,
		ExternalProductID: req.ExternalProductID,
		ExternalOptionID:  req.ExternalOptionID,
		Active:            true,
	}
	if err := s.store.CreateListing(listing); err != nil {
		return nil, err
	}

	if _, err := s.EnqueueForItem(userID, itemID); err != nil {
		logrus.WithError(err).WithField("item_id", itemID).Error("Failed to enqueue sync after listing creation")
	}

	return listing, nil
}

func (s *SyncService) DeleteListing(userID, listingID uuid.UUID) error {
	listing, err := s.store.GetListing(userID, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return apperrors.New(apperrors.CodeNotFound, "listing not found")
	}
	return s.store.DeleteListing(userID, listingID)
}

func (s *SyncService) ListJobs(userID, itemID uuid.UUID) ([]models.SyncJob, error) {
	if err := s.requireItem(userID, itemID); err != nil {
		return nil, err
	}
	return s.store.ListJobs(userID, itemID)
}

func (s *SyncService) requireItem(userID, itemID uuid.UUID) error {
	item, err := s.store.GetItem(userID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperrors.New(apperrors.CodeNotFound, "item not found")
	}
	return nil
}
