package app

import (
	"sort"

	"practice-quiz-service/internal/domain"
)

// BuildReview produces one entry per question in pool order. Verdicts use the
// same set comparison as Score.
func BuildReview(pool []domain.Question, answers AnswerLog) []domain.ReviewEntry {
	entries := make([]domain.ReviewEntry, 0, len(pool))
	for i, q := range pool {
		user := sortedCopy(answers[i])
		correct := sortedCopy(q.CorrectAnswers)

		verdict := domain.VerdictIncorrect
		if len(user) > 0 && sameSet(user, correct) {
			verdict = domain.VerdictCorrect
		}

		userSet := toSet(user)
		correctSet := toSet(correct)
		options := make([]domain.ReviewOption, len(q.Options))
		for idx, text := range q.Options {
			_, picked := userSet[idx]
			_, right := correctSet[idx]
			options[idx] = domain.ReviewOption{
				Letter: domain.OptionLetter(idx),
				Text:   text,
				Mark:   markOption(picked, right),
			}
		}

		entries = append(entries, domain.ReviewEntry{
			Index:           i,
			Question:        q.Text,
			UserSelected:    user,
			CorrectSelected: correct,
			UserLetters:     domain.OptionLetters(user),
			CorrectLetters:  domain.OptionLetters(correct),
			Skipped:         len(user) == 0,
			Verdict:         verdict,
			Options:         options,
			Explanation:     q.Explanation,
		})
	}
	return entries
}

func markOption(picked, right bool) domain.OptionMark {
	switch {
	case picked && right:
		return domain.MarkUserCorrect
	case picked:
		return domain.MarkUserIncorrect
	case right:
		return domain.MarkMissedCorrect
	default:
		return domain.MarkNeutral
	}
}

func sortedCopy(values []int) []int {
	out := make([]int, 0, len(values))
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
