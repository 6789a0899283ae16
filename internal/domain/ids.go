package domain

import (
	"fmt"
	"regexp"
)

var setIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateSetID rejects ids that could escape a data directory or are
// otherwise unusable as a document key.
func ValidateSetID(id string) error {
	if !setIDPattern.MatchString(id) || len(id) > 128 {
		return fmt.Errorf("%q: %w", id, ErrInvalidQuizSetID)
	}
	return nil
}

// DocumentName is the catalog key used for a quiz created from an admin id.
func DocumentName(id string) string {
	return "quiz_" + id + ".json"
}
