// internal/store/memory.go
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

// MemoryStore is an in-memory Store used as the test double for the
// persistence collaborator. The claim semantics mirror the conditional
// update of the gorm implementation under a mutex.
type MemoryStore struct {
	mu        sync.Mutex
	items     map[uuid.UUID]models.Item
	movements map[uuid.UUID]models.Movement
	policies  map[uuid.UUID]models.InventoryPolicy
	listings  map[uuid.UUID]models.ChannelListing
	jobs      map[uuid.UUID]models.SyncJob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:     make(map[uuid.UUID]models.Item),
		movements: make(map[uuid.UUID]models.Movement),
		policies:  make(map[uuid.UUID]models.InventoryPolicy),
		listings:  make(map[uuid.UUID]models.ChannelListing),
		jobs:      make(map[uuid.UUID]models.SyncJob),
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// PutItem seeds an item fixture.
func (s *MemoryStore) PutItem(item models.Item) models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&item.ID)
	s.items[item.ID] = item
	return item
}

// PutListing seeds a channel listing fixture.
func (s *MemoryStore) PutListing(listing models.ChannelListing) models.ChannelListing {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&listing.ID)
	s.listings[listing.ID] = listing
	return listing
}

func (s *MemoryStore) GetItem(userID, itemID uuid.UUID) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemID]
	if !ok || item.UserID != userID {
		return nil, nil
	}
	copied := item
	return &copied, nil
}

func (s *MemoryStore) ListMovements(userID, itemID uuid.UUID) ([]models.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var movements []models.Movement
	for _, m := range s.movements {
		if m.UserID == userID && m.ItemID == itemID {
			movements = append(movements, m)
		}
	}
	return movements, nil
}

func (s *MemoryStore) GetMovement(userID, movementID uuid.UUID) (*models.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movements[movementID]
	if !ok || m.UserID != userID {
		return nil, nil
	}
	copied := m
	return &copied, nil
}

func (s *MemoryStore) CreateMovement(m *models.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&m.ID)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	s.movements[m.ID] = *m
	return nil
}

func (s *MemoryStore) UpdateMovement(m *models.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.UpdatedAt = time.Now()
	s.movements[m.ID] = *m
	return nil
}

func (s *MemoryStore) DeleteMovement(userID, movementID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.movements[movementID]; ok && m.UserID == userID {
		delete(s.movements, movementID)
	}
	return nil
}

func (s *MemoryStore) SumArrivals(userID, purchaseID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, m := range s.movements {
		if m.UserID == userID && m.Type == models.MovementIn &&
			m.FulfillsID != nil && *m.FulfillsID == purchaseID {
			total += m.Count
		}
	}
	return total, nil
}

func (s *MemoryStore) GetPolicy(userID, itemID uuid.UUID) (*models.InventoryPolicy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.policies {
		if p.UserID == userID && p.ItemID == itemID {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) SavePolicy(p *models.InventoryPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&p.ID)
	s.policies[p.ID] = *p
	return nil
}

func (s *MemoryStore) ListActiveListings(userID, itemID uuid.UUID) ([]models.ChannelListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var listings []models.ChannelListing
	for _, l := range s.listings {
		if l.UserID == userID && l.ItemID == itemID && l.Active {
			listings = append(listings, l)
		}
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Provider < listings[j].Provider
	})
	return listings, nil
}

func (s *MemoryStore) GetListing(userID, listingID uuid.UUID) (*models.ChannelListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[listingID]
	if !ok || l.UserID != userID {
		return nil, nil
	}
	copied := l
	return &copied, nil
}

func (s *MemoryStore) ListListings(userID, itemID uuid.UUID) ([]models.ChannelListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var listings []models.ChannelListing
	for _, l := range s.listings {
		if l.UserID == userID && l.ItemID == itemID {
			listings = append(listings, l)
		}
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Provider < listings[j].Provider
	})
	return listings, nil
}

func (s *MemoryStore) CreateListing(l *models.ChannelListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&l.ID)
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	s.listings[l.ID] = *l
	return nil
}

func (s *MemoryStore) DeleteListing(userID, listingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.listings[listingID]; ok && l.UserID == userID {
		delete(s.listings, listingID)
	}
	return nil
}

func (s *MemoryStore) UpsertJob(job *models.SyncJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.jobs {
		if existing.UserID == job.UserID && existing.Provider == job.Provider && existing.ItemID == job.ItemID {
			existing.ListingID = job.ListingID
			existing.TargetQty = job.TargetQty
			existing.Status = models.SyncJobPending
			existing.Attempts = 0
			existing.LastError = ""
			existing.NextRunAt = job.NextRunAt
			existing.LockedAt = nil
			existing.UpdatedAt = time.Now()
			s.jobs[id] = existing
			*job = existing
			return nil
		}
	}

	ensureID(&job.ID)
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	s.jobs[job.ID] = *job
	return nil
}

func (s *MemoryStore) DueJobs(userID *uuid.UUID, now time.Time, limit int) ([]models.SyncJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []models.SyncJob
	for _, j := range s.jobs {
		if j.Status != models.SyncJobPending || j.LockedAt != nil || j.NextRunAt.After(now) {
			continue
		}
		if userID != nil && j.UserID != *userID {
			continue
		}
		due = append(due, j)
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextRunAt.Equal(due[j].NextRunAt) {
			return due[i].NextRunAt.Before(due[j].NextRunAt)
		}
		return due[i].ID.String() < due[j].ID.String()
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *MemoryStore) ClaimJob(jobID uuid.UUID, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[jobID]
	if !ok || j.Status != models.SyncJobPending || j.LockedAt != nil {
		return false, nil
	}
	j.Status = models.SyncJobRunning
	j.LockedAt = &now
	s.jobs[jobID] = j
	return true, nil
}

func (s *MemoryStore) UpdateJob(job *models.SyncJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.UpdatedAt = time.Now()
	s.jobs[job.ID] = *job
	return nil
}

func (s *MemoryStore) ListJobs(userID, itemID uuid.UUID) ([]models.SyncJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []models.SyncJob
	for _, j := range s.jobs {
		if j.UserID == userID && j.ItemID == itemID {
			jobs = append(jobs, j)
		}
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].Provider < jobs[j].Provider
	})
	return jobs, nil
}
