package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCount is returned when a question count is not a positive integer within the pool.
	ErrInvalidCount = errors.New("invalid question count")
	// ErrInvalidTimeLimit indicates a time limit that is neither unlimited nor a positive number of minutes.
	ErrInvalidTimeLimit = errors.New("invalid time limit")
	// ErrNoQuizSet indicates no quiz set was chosen.
	ErrNoQuizSet = errors.New("no quiz set selected")
	// ErrEmptySelection is returned when an answer is submitted without any option selected.
	ErrEmptySelection = errors.New("select at least one answer before submitting")
	// ErrInvalidOption indicates a selected option index outside the question.
	ErrInvalidOption = errors.New("option not found")
	// ErrQuizSetNotFound indicates the quiz document could not be located.
	ErrQuizSetNotFound = errors.New("quiz set not found")
	// ErrMalformedData indicates the quiz document is not a valid question array.
	ErrMalformedData = errors.New("malformed quiz data")
	// ErrInvalidQuizSetID indicates an id or filename unusable as a store key.
	ErrInvalidQuizSetID = errors.New("invalid quiz set id")
	// ErrMissingField indicates a required admin request field was empty.
	ErrMissingField = errors.New("missing required field")
	// ErrSessionAlreadyStarted is returned when starting a session twice.
	ErrSessionAlreadyStarted = errors.New("session already started")
	// ErrSessionNotActive is returned for events outside the active state.
	ErrSessionNotActive = errors.New("session is not active")
	// ErrNotTimeLimited is returned by timer operations on untimed sessions.
	ErrNotTimeLimited = errors.New("session has no time limit")
	// ErrSessionNotCompleted is returned when results are requested early.
	ErrSessionNotCompleted = errors.New("session not completed")
)

// ConfigurationError is a user-correctable problem with the session setup.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DataLoadError reports a failure to fetch or parse a quiz document.
type DataLoadError struct {
	SetID string
	Err   error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load quiz set %q: %v", e.SetID, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
