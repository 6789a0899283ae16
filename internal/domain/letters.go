package domain

// OptionLetter maps a 0-based option index to its display letter (0 -> "A").
func OptionLetter(index int) string {
	return string(rune('A' + index))
}

// OptionLetters maps indices to letters, preserving order.
func OptionLetters(indices []int) []string {
	letters := make([]string, 0, len(indices))
	for _, idx := range indices {
		letters = append(letters, OptionLetter(idx))
	}
	return letters
}

// LetterIndex is the inverse of OptionLetter; it reports false for non-letters.
func LetterIndex(letter rune) (int, bool) {
	switch {
	case letter >= 'A' && letter <= 'Z':
		return int(letter - 'A'), true
	case letter >= 'a' && letter <= 'z':
		return int(letter - 'a'), true
	}
	return 0, false
}
