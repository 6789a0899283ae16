package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"practice-quiz-service/internal/domain"
)

func TestPoolRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		PoolLoader: NewStaticPoolLoader(map[string][]domain.Question{
			"quiz1.json": samplePool(),
		}),
	}
	repo := NewPoolRepository(loader, time.Minute)

	if _, err := repo.GetPool(context.Background(), "quiz1.json"); err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetPool(context.Background(), "quiz1.json"); err != nil {
		t.Fatalf("get pool 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestPoolRepositoryReturnsCopies(t *testing.T) {
	repo := NewPoolRepository(NewStaticPoolLoader(map[string][]domain.Question{
		"quiz1.json": samplePool(),
	}), time.Minute)

	first, err := repo.GetPool(context.Background(), "quiz1.json")
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	first[0].Text = "mutated"
	first[0].CorrectAnswers[0] = 0

	second, err := repo.GetPool(context.Background(), "quiz1.json")
	if err != nil {
		t.Fatalf("get pool 2: %v", err)
	}
	if second[0].Text != "What is 2 + 2?" || second[0].CorrectAnswers[0] != 1 {
		t.Fatalf("cached pool was mutated through a returned copy: %+v", second[0])
	}
}

func TestPoolRepositoryInvalidate(t *testing.T) {
	loader := &countingLoader{
		PoolLoader: NewStaticPoolLoader(map[string][]domain.Question{
			"quiz1.json": samplePool(),
		}),
	}
	repo := NewPoolRepository(loader, time.Minute)
	ctx := context.Background()

	_, _ = repo.GetPool(ctx, "quiz1.json")
	if err := repo.Invalidate(ctx, "quiz1.json"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = repo.GetPool(ctx, "quiz1.json")
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls %d", loader.calls)
	}
}

func TestPoolRepositoryMissingSet(t *testing.T) {
	repo := NewPoolRepository(NewStaticPoolLoader(nil), time.Minute)
	_, err := repo.GetPool(context.Background(), "missing.json")
	if !errors.Is(err, domain.ErrQuizSetNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingLoader struct {
	PoolLoader
	calls int
}

func (l *countingLoader) LoadPool(ctx context.Context, setID string) ([]domain.Question, error) {
	l.calls++
	return l.PoolLoader.LoadPool(ctx, setID)
}

func samplePool() []domain.Question {
	return []domain.Question{
		{
			ID:             1,
			Text:           "What is 2 + 2?",
			Options:        []string{"3", "4", "5"},
			CorrectAnswers: []int{1},
		},
	}
}
