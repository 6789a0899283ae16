package memory

import (
	"context"
	"testing"

	"practice-quiz-service/internal/domain"
)

func TestResultStoreKeepsNewestFirst(t *testing.T) {
	store := NewResultStore(2)
	ctx := context.Background()

	for _, id := range []string{"a1", "a2", "a3"} {
		if err := store.Save(ctx, domain.AttemptRecord{ID: id, SetID: "quiz1.json"}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	_ = store.Save(ctx, domain.AttemptRecord{ID: "other", SetID: "quiz2.json"})

	records, err := store.Recent(ctx, "quiz1.json", 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 || records[0].ID != "a3" || records[1].ID != "a2" {
		t.Fatalf("expected [a3 a2], got %+v", records)
	}

	records, _ = store.Recent(ctx, "quiz1.json", 1)
	if len(records) != 1 || records[0].ID != "a3" {
		t.Fatalf("expected limit 1 to return newest, got %+v", records)
	}
}
