package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"practice-quiz-service/internal/domain"
	"github.com/google/uuid"
)

// PoolRepository loads question pools (from cache/backing store).
type PoolRepository interface {
	GetPool(ctx context.Context, setID string) ([]domain.Question, error)
	Invalidate(ctx context.Context, setID string) error
}

// CatalogRepository lists the available quiz sets.
type CatalogRepository interface {
	LoadCatalog(ctx context.Context) (domain.Catalog, error)
}

// ResultRepository keeps the history of finished attempts.
type ResultRepository interface {
	Save(ctx context.Context, record domain.AttemptRecord) error
	Recent(ctx context.Context, setID string, limit int) ([]domain.AttemptRecord, error)
}

// QuizService wires the repositories to the session engine.
type QuizService struct {
	pools    PoolRepository
	catalog  CatalogRepository
	results  ResultRepository
	selector *Selector
	now      func() time.Time
	newID    func() string
}

func NewQuizService(pools PoolRepository, catalog CatalogRepository, results ResultRepository) *QuizService {
	return NewQuizServiceWithSelector(pools, catalog, results, NewSelector())
}

// NewQuizServiceWithSelector lets tests inject a seeded selector.
func NewQuizServiceWithSelector(pools PoolRepository, catalog CatalogRepository, results ResultRepository, selector *Selector) *QuizService {
	return &QuizService{
		pools:    pools,
		catalog:  catalog,
		results:  results,
		selector: selector,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Catalog returns the quiz sets available for selection.
func (s *QuizService) Catalog(ctx context.Context) (domain.Catalog, error) {
	catalog, err := s.catalog.LoadCatalog(ctx)
	if err != nil {
		return domain.Catalog{}, &domain.DataLoadError{SetID: "catalog", Err: err}
	}
	return catalog, nil
}

// LoadPool returns the full question pool of a set.
func (s *QuizService) LoadPool(ctx context.Context, setID string) ([]domain.Question, error) {
	pool, err := s.pools.GetPool(ctx, setID)
	if err != nil {
		var loadErr *domain.DataLoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &domain.DataLoadError{SetID: setID, Err: err}
	}
	return pool, nil
}

// StartSession loads the requested set, draws the working subset and returns
// an active session. Counts larger than the pool are clamped.
func (s *QuizService) StartSession(ctx context.Context, cfg SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := s.LoadPool(ctx, cfg.SetID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, &domain.DataLoadError{SetID: cfg.SetID, Err: fmt.Errorf("no questions: %w", domain.ErrMalformedData)}
	}

	count := cfg.Count
	if count == 0 || count > len(pool) {
		count = len(pool)
	}
	selected, err := s.selector.Select(pool, count)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "count", Err: err}
	}

	session := NewSession(s.newID())
	if err := session.Start(selected, PointsPerQuestion(len(selected)), int(cfg.TimeLimit/time.Second)); err != nil {
		return nil, err
	}
	return session, nil
}

// Finish records a completed session in the attempt history. Recording is
// best-effort: a storage failure is logged and the record still returned.
func (s *QuizService) Finish(ctx context.Context, setID string, session *Session) (domain.AttemptRecord, error) {
	result, err := session.Result()
	if err != nil {
		return domain.AttemptRecord{}, err
	}
	record := domain.AttemptRecord{
		ID:          session.ID(),
		SetID:       setID,
		Result:      result,
		TimedOut:    session.TimedOut(),
		CompletedAt: s.now().UTC(),
	}
	if s.results != nil {
		if err := s.results.Save(ctx, record); err != nil {
			log.Printf("record attempt %s: %v", record.ID, err)
		}
	}
	return record, nil
}

// History returns the most recent attempts for a set, newest first.
func (s *QuizService) History(ctx context.Context, setID string, limit int) ([]domain.AttemptRecord, error) {
	if s.results == nil {
		return nil, nil
	}
	return s.results.Recent(ctx, setID, limit)
}
