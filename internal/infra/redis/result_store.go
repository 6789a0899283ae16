package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"practice-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ResultStore keeps attempt history in a capped Redis list per quiz set:
// LPUSH quiz:results:{setID} <record json>; LTRIM to limit.
type ResultStore struct {
	client *redis.Client
	limit  int
	ttl    time.Duration
}

func NewResultStore(client *redis.Client, limit int, ttl time.Duration) *ResultStore {
	if limit <= 0 {
		limit = 20
	}
	return &ResultStore{client: client, limit: limit, ttl: ttl}
}

func (s *ResultStore) Save(ctx context.Context, record domain.AttemptRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode attempt: %w", err)
	}
	key := s.key(record.SetID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(s.limit-1))
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *ResultStore) Recent(ctx context.Context, setID string, limit int) ([]domain.AttemptRecord, error) {
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}
	raw, err := s.client.LRange(ctx, s.key(setID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	records := make([]domain.AttemptRecord, 0, len(raw))
	for _, item := range raw {
		var record domain.AttemptRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			log.Printf("skip attempt record in %s: %v", setID, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *ResultStore) key(setID string) string {
	return "quiz:results:" + setID
}
