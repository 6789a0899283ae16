package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"practice-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// PoolLoader fetches a question pool from a backing store (file store, Postgres).
type PoolLoader interface {
	LoadPool(ctx context.Context, setID string) ([]domain.Question, error)
}

// PoolRepository caches pools with TTL to avoid re-reading and re-validating
// documents on every session start.
type PoolRepository struct {
	loader PoolLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedPool
}

type cachedPool struct {
	pool      []domain.Question
	expiresAt time.Time
}

func NewPoolRepository(loader PoolLoader, ttl time.Duration) *PoolRepository {
	return &PoolRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedPool),
	}
}

// GetPool returns a copy of the cached pool, loading it on a miss. Callers
// may mutate the returned slice freely.
func (r *PoolRepository) GetPool(ctx context.Context, setID string) ([]domain.Question, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[setID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return clonePool(entry.pool), nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(setID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[setID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.pool, nil
		}
		r.mu.RUnlock()

		pool, err := r.loader.LoadPool(ctx, setID)
		if err != nil {
			return nil, err
		}

		if ttl := r.ttlWithJitter(); ttl > 0 {
			r.mu.Lock()
			r.cache[setID] = cachedPool{pool: pool, expiresAt: now.Add(ttl)}
			r.mu.Unlock()
		}
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return clonePool(result.([]domain.Question)), nil
}

// Invalidate drops a cached pool after the set is rewritten or deleted.
func (r *PoolRepository) Invalidate(_ context.Context, setID string) error {
	r.mu.Lock()
	delete(r.cache, setID)
	r.mu.Unlock()
	return nil
}

// StaticPoolLoader serves pools from an in-memory map.
type StaticPoolLoader struct {
	pools map[string][]domain.Question
}

func NewStaticPoolLoader(pools map[string][]domain.Question) *StaticPoolLoader {
	return &StaticPoolLoader{pools: pools}
}

func (l *StaticPoolLoader) LoadPool(_ context.Context, setID string) ([]domain.Question, error) {
	if pool, ok := l.pools[setID]; ok {
		return clonePool(pool), nil
	}
	return nil, domain.ErrQuizSetNotFound
}

func (r *PoolRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func clonePool(pool []domain.Question) []domain.Question {
	out := make([]domain.Question, len(pool))
	for i, q := range pool {
		out[i] = q.Clone()
	}
	return out
}
