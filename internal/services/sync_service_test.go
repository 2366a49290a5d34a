// internal/services/sync_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jiu-020812/orange-fanta-back/internal/apperrors"
	"github.com/Jiu-020812/orange-fanta-back/internal/channelsync"
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
	"github.com/Jiu-020812/orange-fanta-back/internal/store"
)

type fakeAdapter struct {
	provider models.ChannelProvider
	fail     bool
	calls    int
}

func (f *fakeAdapter) Provider() models.ChannelProvider { return f.provider }

func (f *fakeAdapter) UpdateStock(update channelsync.StockUpdate) (channelsync.UpdateResult, error) {
	f.calls++
	if f.fail {
		return channelsync.UpdateResult{}, errors.New("channel unavailable")
	}
	return channelsync.UpdateResult{OK: true}, nil
}

func newSyncFixture(t *testing.T, adapter *fakeAdapter) (*SyncService, *store.MemoryStore, uuid.UUID, models.Item) {
	t.Helper()
	st := store.NewMemoryStore()
	userID := uuid.New()
	item := st.PutItem(models.Item{
		UserID: userID,
		Name:   gofakeit.ProductName(),
	})
	svc := NewSyncService(st, channelsync.NewRegistry(adapter))
	return svc, st, userID, item
}

func seedStock(t *testing.T, st *store.MemoryStore, userID, itemID uuid.UUID, count int) {
	t.Helper()
	err := st.CreateMovement(&models.Movement{
		UserID:     userID,
		ItemID:     itemID,
		Type:       models.MovementIn,
		Count:      count,
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
}

// rewindJob forces a pending job due so a retry can run without waiting
// out the backoff.
func rewindJob(t *testing.T, st *store.MemoryStore, userID, itemID uuid.UUID) {
	t.Helper()
	jobs, err := st.ListJobs(userID, itemID)
	require.NoError(t, err)
	for i := range jobs {
		jobs[i].NextRunAt = time.Now().Add(-time.Second)
		require.NoError(t, st.UpdateJob(&jobs[i]))
	}
}

func TestEnqueueForItem(t *testing.T) {
	adapter := &fakeAdapter{provider: models.ProviderNaver}
	svc, st, userID, item := newSyncFixture(t, adapter)

	seedStock(t, st, userID, item.ID, 10)
	st.PutListing(models.ChannelListing{
		UserID: userID, ItemID: item.ID, Provider: models.ProviderNaver, Active: true,
	})
	st.PutListing(models.ChannelListing{
		UserID: userID, ItemID: item.ID, Provider: models.ProviderCoupang, Active: true,
	})

	enqueued, err := svc.EnqueueForItem(userID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, enqueued)

	jobs, err := st.ListJobs(userID, item.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	for _, job := range jobs {
		assert.Equal(t, models.SyncJobPending, job.Status)
		assert.Equal(t, 0, job.Attempts)
		// Default policy: buffer 1, so 10 on hand publishes 9.
		assert.Equal(t, 9, job.TargetQty)
	}
}

func TestEnqueueForItemNoListings(t *testing.T) {
	svc, st, userID, item := newSyncFixture(t, &fakeAdapter{provider: models.ProviderNaver})
	seedStock(t, st, userID, item.ID, 10)

	enqueued, err := svc.EnqueueForItem(userID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, enqueued)
}

// A re-enqueue for the same item and channel supersedes the stale job
// instead of piling up a second one.
func TestEnqueueSupersedesExistingJob(t *testing.T) {
	adapter := &fakeAdapter{provider: models.ProviderNaver, fail: true}
	svc, st, userID, item := newSyncFixture(t, adapter)

	seedStock(t, st, userID, item.ID, 5)
	st.PutListing(models.ChannelListing{
		UserID: userID, ItemID: item.ID, Provider: models.ProviderNaver, Active: true,
	})

	_, err := svc.EnqueueForItem(userID, item.ID)
	require.NoError(t, err)

	// Burn an attempt so the job carries failure state.
	result, err := svc.RunDueJobs(&userID, 10)
	require.NoError(t, err)
	require.Equal(t, 1, result.Failed)

	seedStock(t, st, userID, item.ID, 20)
	_, err = svc.EnqueueForItem(userID, item.ID)
	require.NoError(t, err)

	jobs, err := st.ListJobs(userID, item.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.SyncJobPending, jobs[0].Status)
	assert.Equal(t, 0, jobs[0].Attempts)
	assert.Empty(t, jobs[0].LastError)
	assert.Equal(t, 24, jobs[0].TargetQty)
}

func TestRunDueJobsSuccess(t *testing.T) {
	adapter := &fakeAdapter{provider: models.ProviderNaver}
	svc, st, userID, item := newSyncFixture(t, adapter)

	seedStock(t, st, userID, item.ID, 10)
	st.PutListing(models.ChannelListing{
		UserID: userID, ItemID: item.ID, Provider: models.ProviderNaver, Active: true,
	})
	_, err := svc.EnqueueForItem(userID, item.ID)
	require.NoError(t, err)

	result, err := svc.RunDueJobs(&userID, 10)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Processed: 1, Succeeded: 1}, result)
	assert.Equal(t, 1, adapter.calls)

	jobs, err := st.ListJobs(userID, item.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.SyncJobSucceeded, jobs[0].Status)
	assert.Nil(t, jobs[0].LockedAt)
	assert.Empty(t, jobs[0].LastError)

	// A succeeded job is not due again.
	result, err = svc.RunDueJobs(&userID, 10)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{}, result)
}

func TestRunDueJobsRetrySchedule(t *testing.T) {
	adapter := &fakeAdapter{provider: models.ProviderNaver, fail: true}
	svc, st, userID, item := newSyncFixture(t, adapter)

	seedStock(t, st, userID, item.ID, 10)
	st.PutListing(models.ChannelListing{
		UserID: userID, ItemID: item.ID, Provider: models.ProviderNaver, Active: true,
	})
	_, err := svc.EnqueueForItem(userID, item.ID)
	require.NoError(t, err)

	expectedDelays := []time.Duration{
		1 * time.Minute, 5 * time.Minute, 15 * time.Minute, 30 * time.Minute,
	}
	for attempt, delay := range expectedDelays {
		before := time.Now()
		result, err := svc.RunDueJobs(&userID, 10)
		require.NoError(t, err)
		require.Equal(t, 1, result.Failed, "attempt %d", attempt+1)

		jobs, err := st.ListJobs(userID, item.ID)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		job := jobs[0]

		assert.Equal(t, models.SyncJobPending, job.Status)
		assert.Equal(t, attempt+1, job.Attempts)
		assert.NotEmpty(t, job.LastError)
		assert.Nil(t, job.LockedAt)
		assert.WithinDuration(t, before.Add(delay), job.NextRunAt, 5*time.Second)

		rewindJob(t, st, userID, item.ID)
	}

	// The fifth failure is terminal.
	result, err := svc.RunDueJobs(&userID, 10)
	require.NoError(t, err)
	require.Equal(t, 1, result.Failed)

	jobs, err := st.ListJobs(userID, item.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.SyncJobFailed, jobs[0].Status)
	assert.Equal(t, 5, jobs[0].Attempts)

	// Terminal jobs never run again.
	rewindJob(t, st, userID, item.ID)
	result, err = svc.RunDueJobs(&userID, 10)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{}, result)
	assert.Equal(t, 5, adapter.calls)
}

// A listing deleted between enqueue and execution fails the job like any
// adapter error, consuming an attempt.
func TestRunDueJobsMissingListing(t *testing.T) {
	adapter := &fakeAdapter{provider: models.ProviderNaver}
	svc, st, userID, item := newSyncFixture(t, adapter)

	seedStock(t, st, userID, item.ID, 10)
	listing := st.PutListing(models.ChannelListing{
		UserID: userID, ItemID: item.ID, Provider: models.ProviderNaver, Active: true,
	})
	_, err := svc.EnqueueForItem(userID, item.ID)
	require.NoError(t, err)

	require.NoError(t, st.DeleteListing(userID, listing.ID))

	result, err := svc.RunDueJobs(&userID, 10)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Processed: 1, Failed: 1}, result)
	assert.Equal(t, 0, adapter.calls)

	jobs, err := st.ListJobs(userID, item.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 1, jobs[0].Attempts)
	assert.Contains(t, jobs[0].LastError, "no longer exists")
}

func TestRunDueJobsScopedToUser(t *testing.T) {
	adapter := &fakeAdapter{provider: models.ProviderNaver}
	svc, st, userID, item := newSyncFixture(t, adapter)

	seedStock(t, st, userID, item.ID, 10)
	st.PutListing(models.ChannelListing{
		UserID: userID, ItemID: item.ID, Provider: models.ProviderNaver, Active: true,
	})
	_, err := svc.EnqueueForItem(userID, item.ID)
	require.NoError(t, err)

	otherUser := uuid.New()
	result, err := svc.RunDueJobs(&otherUser, 10)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{}, result)

	// A nil user drains everyone.
	result, err = svc.RunDueJobs(nil, 10)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Processed: 1, Succeeded: 1}, result)
}

func TestEffectivePolicyDefaults(t *testing.T) {
	svc, _, userID, item := newSyncFixture(t, &fakeAdapter{provider: models.ProviderNaver})

	policy, err := svc.EffectivePolicy(userID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PolicyModeNormal, policy.Mode)
	assert.Equal(t, 1, policy.Buffer)
	assert.Equal(t, 1, policy.MinVisible)
	assert.Nil(t, policy.ExclusiveProvider)
}

func TestSetPolicyReEnqueues(t *testing.T) {
	adapter := &fakeAdapter{provider: models.ProviderNaver}
	svc, st, userID, item := newSyncFixture(t, adapter)

	seedStock(t, st, userID, item.ID, 10)
	st.PutListing(models.ChannelListing{
		UserID: userID, ItemID: item.ID, Provider: models.ProviderNaver, Active: true,
	})

	buffer := 3
	policy, err := svc.SetPolicy(userID, item.ID, &SetPolicyRequest{
		Mode: "NORMAL", Buffer: &buffer,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, policy.Buffer)

	jobs, err := st.ListJobs(userID, item.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 7, jobs[0].TargetQty)
}

func TestSetPolicyRejectsUnknownMode(t *testing.T) {
	svc, _, userID, item := newSyncFixture(t, &fakeAdapter{provider: models.ProviderNaver})

	_, err := svc.SetPolicy(userID, item.ID, &SetPolicyRequest{Mode: "HIDDEN"})
	assert.Error(t, err)
}

func TestCreateListingRejectsDuplicateProvider(t *testing.T) {
	svc, _, userID, item := newSyncFixture(t, &fakeAdapter{provider: models.ProviderNaver})

	_, err := svc.CreateListing(userID, item.ID, &CreateListingRequest{
		Provider: "NAVER", ExternalProductID: "ext-1",
	})
	require.NoError(t, err)

	_, err = svc.CreateListing(userID, item.ID, &CreateListingRequest{
		Provider: "NAVER", ExternalProductID: "ext-2",
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeDuplicate))
}

func TestDeleteListingUnknown(t *testing.T) {
	svc, _, userID, _ := newSyncFixture(t, &fakeAdapter{provider: models.ProviderNaver})

	err := svc.DeleteListing(userID, uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}
