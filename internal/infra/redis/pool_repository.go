package redis

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"practice-quiz-service/internal/domain"
	"practice-quiz-service/internal/quizdoc"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// PoolLoader fetches a question pool from a backing store (file store, Postgres).
type PoolLoader interface {
	LoadPool(ctx context.Context, setID string) ([]domain.Question, error)
}

// PoolRepository caches question documents in Redis and falls back to a
// loader on cache miss. Documents are stored as:
// SET quiz:{setID}:pool <json array> EX ttl
type PoolRepository struct {
	client *redis.Client
	loader PoolLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewPoolRepository(client *redis.Client, loader PoolLoader, ttl time.Duration) *PoolRepository {
	return &PoolRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *PoolRepository) GetPool(ctx context.Context, setID string) ([]domain.Question, error) {
	if pool, ok := r.cached(ctx, setID); ok {
		return pool, nil
	}

	result, err, _ := r.sf.Do(setID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if pool, ok := r.cached(ctx, setID); ok {
			return pool, nil
		}

		pool, err := r.loader.LoadPool(ctx, setID)
		if err != nil {
			return nil, err
		}

		data, err := quizdoc.EncodeQuestions(pool)
		if err == nil {
			err = r.client.Set(ctx, r.poolKey(setID), data, r.ttlWithJitter()).Err()
		}
		if err != nil {
			log.Printf("cache pool %s: %v", setID, err)
		}
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	pool := result.([]domain.Question)
	out := make([]domain.Question, len(pool))
	for i, q := range pool {
		out[i] = q.Clone()
	}
	return out, nil
}

// Invalidate removes the cached document for setID.
func (r *PoolRepository) Invalidate(ctx context.Context, setID string) error {
	return r.client.Del(ctx, r.poolKey(setID)).Err()
}

func (r *PoolRepository) cached(ctx context.Context, setID string) ([]domain.Question, bool) {
	data, err := r.client.Get(ctx, r.poolKey(setID)).Bytes()
	if err != nil {
		return nil, false
	}
	pool, err := quizdoc.DecodeQuestions(data)
	if err != nil {
		log.Printf("discard cached pool %s: %v", setID, err)
		return nil, false
	}
	return pool, true
}

func (r *PoolRepository) poolKey(setID string) string {
	return "quiz:" + setID + ":pool"
}

func (r *PoolRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
