package redis

import (
	"context"
	"testing"
	"time"

	"practice-quiz-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestResultStoreCapsHistory(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewResultStore(client, 2, time.Hour)
	ctx := context.Background()

	for i, id := range []string{"a1", "a2", "a3"} {
		record := domain.AttemptRecord{
			ID:    id,
			SetID: "quiz1.json",
			Result: domain.Result{
				Total:        4,
				CorrectCount: i,
				Score:        i * 250,
			},
		}
		if err := store.Save(ctx, record); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	if !mr.Exists("quiz:results:quiz1.json") {
		t.Fatalf("expected redis key to be set")
	}
	if ttl := mr.TTL("quiz:results:quiz1.json"); ttl <= 0 {
		t.Fatalf("expected ttl on history key, got %v", ttl)
	}

	records, err := store.Recent(ctx, "quiz1.json", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records after trim, got %d", len(records))
	}
	if records[0].ID != "a3" || records[0].Result.Score != 500 {
		t.Fatalf("expected newest record first, got %+v", records[0])
	}
}
