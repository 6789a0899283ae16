package app

import (
	"strconv"
	"strings"
	"time"

	"practice-quiz-service/internal/domain"
)

// SessionConfig is the validated setup chosen before an attempt starts.
type SessionConfig struct {
	SetID string
	// Count of questions to draw; zero selects the whole pool.
	Count int
	// TimeLimit of zero means unlimited.
	TimeLimit time.Duration
}

// Validate reports the first user-correctable problem with the config.
func (c SessionConfig) Validate() error {
	if strings.TrimSpace(c.SetID) == "" {
		return &domain.ConfigurationError{Field: "quiz set", Err: domain.ErrNoQuizSet}
	}
	if c.Count < 0 {
		return &domain.ConfigurationError{Field: "count", Err: domain.ErrInvalidCount}
	}
	if c.TimeLimit < 0 || c.TimeLimit%time.Second != 0 {
		return &domain.ConfigurationError{Field: "time limit", Err: domain.ErrInvalidTimeLimit}
	}
	return nil
}

// ParseSessionConfig builds a config from the raw selector values used by
// the setup form: count is "all" or a positive integer, timeLimit is
// "unlimited", "0" or a positive number of minutes.
func ParseSessionConfig(setID, count, timeLimit string) (SessionConfig, error) {
	cfg := SessionConfig{SetID: strings.TrimSpace(setID)}

	n, err := ParseQuestionCount(count)
	if err != nil {
		return cfg, err
	}
	cfg.Count = n

	limit, err := ParseTimeLimit(timeLimit)
	if err != nil {
		return cfg, err
	}
	cfg.TimeLimit = limit
	return cfg, cfg.Validate()
}

// ParseQuestionCount returns 0 for "all" (or an empty value).
func ParseQuestionCount(raw string) (int, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == "all" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &domain.ConfigurationError{Field: "count", Err: domain.ErrInvalidCount}
	}
	return n, nil
}

// ParseTimeLimit reads minutes; "unlimited", "0" and "" mean no limit.
func ParseTimeLimit(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == "unlimited" || raw == "0" {
		return 0, nil
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 0 {
		return 0, &domain.ConfigurationError{Field: "time limit", Err: domain.ErrInvalidTimeLimit}
	}
	return time.Duration(minutes) * time.Minute, nil
}
