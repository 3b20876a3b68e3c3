package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jobsy/jobmail-analyzer/internal/core"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a record is not found
var ErrNotFound = errors.New("application record not found")

// MemoryStore is an in-memory implementation of the ApplicationStore interface
type MemoryStore struct {
	records map[string]map[string]*core.ApplicationRecord
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]map[string]*core.ApplicationRecord),
		logger:  logger,
	}
}

// Save persists a record for a user. Returns false when a record with
// the same email ID already exists for that user.
func (s *MemoryStore) Save(ctx context.Context, userID string, record *core.ApplicationRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.records[userID]
	if !ok {
		user = make(map[string]*core.ApplicationRecord)
		s.records[userID] = user
	}

	if _, exists := user[record.EmailID]; exists {
		return false, nil
	}

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	user[record.EmailID] = record
	return true, nil
}

// List returns every record stored for a user, oldest first
func (s *MemoryStore) List(ctx context.Context, userID string) ([]*core.ApplicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user := s.records[userID]
	records := make([]*core.ApplicationRecord, 0, len(user))
	for _, record := range user {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Get returns the record with the given email ID
func (s *MemoryStore) Get(ctx context.Context, userID string, emailID string) (*core.ApplicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[userID][emailID]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

// UpdateStatus changes the status of a stored record
func (s *MemoryStore) UpdateStatus(ctx context.Context, userID string, emailID string, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID][emailID]
	if !ok {
		return ErrNotFound
	}
	record.Status = status
	record.UpdatedAt = time.Now()
	return nil
}

// Delete removes a stored record
func (s *MemoryStore) Delete(ctx context.Context, userID string, emailID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[userID][emailID]; !ok {
		return ErrNotFound
	}
	delete(s.records[userID], emailID)
	return nil
}
