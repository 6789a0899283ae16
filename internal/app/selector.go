package app

import (
	"fmt"
	"math/rand"
	"time"

	"practice-quiz-service/internal/domain"
)

// RandomSource is the subset of *rand.Rand the selector needs.
type RandomSource interface {
	Intn(n int) int
}

// Selector draws the working subset of questions for one attempt.
type Selector struct {
	rnd RandomSource
}

// NewSelector seeds a selector from the wall clock.
func NewSelector() *Selector {
	return NewSelectorWithSource(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSelectorWithSource is used by tests that need a deterministic order.
func NewSelectorWithSource(rnd RandomSource) *Selector {
	return &Selector{rnd: rnd}
}

// Select returns count questions drawn uniformly at random, in random order.
// The caller's pool is left untouched; returned questions are deep copies.
func (s *Selector) Select(pool []domain.Question, count int) ([]domain.Question, error) {
	if count <= 0 || count > len(pool) {
		return nil, fmt.Errorf("select %d of %d: %w", count, len(pool), domain.ErrInvalidCount)
	}

	shuffled := make([]domain.Question, len(pool))
	for i, q := range pool {
		shuffled[i] = q.Clone()
	}
	// Fisher-Yates
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:count:count], nil
}

// PointsPerQuestion splits MaxScore evenly across the session, rounding down.
func PointsPerQuestion(poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	return domain.MaxScore / poolSize
}
