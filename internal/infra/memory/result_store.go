package memory

import (
	"context"
	"sync"

	"practice-quiz-service/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultRepository.
// Each set keeps at most limit records, newest first.
type ResultStore struct {
	limit int

	mu      sync.RWMutex
	records map[string][]domain.AttemptRecord
}

func NewResultStore(limit int) *ResultStore {
	if limit <= 0 {
		limit = 20
	}
	return &ResultStore{
		limit:   limit,
		records: make(map[string][]domain.AttemptRecord),
	}
}

func (s *ResultStore) Save(_ context.Context, record domain.AttemptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append([]domain.AttemptRecord{record}, s.records[record.SetID]...)
	if len(list) > s.limit {
		list = list[:s.limit]
	}
	s.records[record.SetID] = list
	return nil
}

func (s *ResultStore) Recent(_ context.Context, setID string, limit int) ([]domain.AttemptRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.records[setID]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	return append([]domain.AttemptRecord(nil), list[:limit]...), nil
}
