package app

import (
	"math"

	"practice-quiz-service/internal/domain"
)

// Score computes the aggregate result for a pool and its answer log.
// A question counts as correct only when the selected set equals the set
// of correct answers; missing or empty selections count as skipped.
func Score(pool []domain.Question, answers AnswerLog, pointsPerQuestion int) domain.Result {
	correct := 0
	skipped := 0
	for i, q := range pool {
		selected := answers[i]
		if len(selected) == 0 {
			skipped++
			continue
		}
		if sameSet(selected, q.CorrectAnswers) {
			correct++
		}
	}

	score := correct * pointsPerQuestion
	percentage := 0
	if len(pool) > 0 {
		percentage = int(math.Round(float64(correct) / float64(len(pool)) * 100))
	}
	return domain.Result{
		Total:          len(pool),
		CorrectCount:   correct,
		SkippedCount:   skipped,
		AttemptedCount: len(pool) - skipped,
		Score:          score,
		MaxScore:       domain.MaxScore,
		Percentage:     percentage,
		Passed:         score >= domain.PassScore,
	}
}

// sameSet reports whether a and b hold the same members, ignoring order and
// duplicates.
func sameSet(a, b []int) bool {
	left := toSet(a)
	right := toSet(b)
	if len(left) != len(right) {
		return false
	}
	for v := range left {
		if _, ok := right[v]; !ok {
			return false
		}
	}
	return true
}

func toSet(values []int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
