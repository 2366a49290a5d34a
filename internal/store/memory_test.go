// internal/store/memory_test.go
package store

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

func seedJob(t *testing.T, s *MemoryStore) models.SyncJob {
	t.Helper()
	job := &models.SyncJob{
		UserID:    uuid.New(),
		Provider:  models.ProviderNaver,
		ItemID:    uuid.New(),
		ListingID: uuid.New(),
		TargetQty: 5,
		Status:    models.SyncJobPending,
		NextRunAt: time.Now().Add(-time.Second),
	}
	require.NoError(t, s.UpsertJob(job))
	return *job
}

// The conditional claim is the queue's only mutual exclusion: however many
// runners race for one PENDING unlocked job, exactly one may win it.
func TestClaimJobConcurrentSingleWinner(t *testing.T) {
	s := NewMemoryStore()
	job := seedJob(t, s)

	const runners = 16
	start := make(chan struct{})
	results := make(chan bool, runners)

	var wg sync.WaitGroup
	for i := 0; i < runners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			claimed, err := s.ClaimJob(job.ID, time.Now())
			assert.NoError(t, err)
			results <- claimed
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	winners := 0
	for claimed := range results {
		if claimed {
			winners++
		}
	}
	assert.Equal(t, 1, winners)

	jobs, err := s.ListJobs(job.UserID, job.ItemID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.SyncJobRunning, jobs[0].Status)
	assert.NotNil(t, jobs[0].LockedAt)
}

func TestClaimJobRejectsNonClaimable(t *testing.T) {
	s := NewMemoryStore()
	job := seedJob(t, s)
	now := time.Now()

	claimed, err := s.ClaimJob(job.ID, now)
	require.NoError(t, err)
	require.True(t, claimed)

	// Already RUNNING and locked.
	claimed, err = s.ClaimJob(job.ID, now)
	require.NoError(t, err)
	assert.False(t, claimed)

	// Unknown job.
	claimed, err = s.ClaimJob(uuid.New(), now)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestDueJobsSkipsClaimedJobs(t *testing.T) {
	s := NewMemoryStore()
	job := seedJob(t, s)

	due, err := s.DueJobs(nil, time.Now(), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)

	claimed, err := s.ClaimJob(job.ID, time.Now())
	require.NoError(t, err)
	require.True(t, claimed)

	due, err = s.DueJobs(nil, time.Now(), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}
