package service

import "errors"

var (
	// ErrNoSamples and ErrNotEnoughLabels are the two generation
	// preconditions; both mean the quiz pool needs more imported data.
	ErrNoSamples       = errors.New("no ECG samples available")
	ErrNotEnoughLabels = errors.New("not enough diagnostic labels available")

	// ErrQuizNotFound is returned when a quiz id does not resolve at
	// grading or review time.
	ErrQuizNotFound = errors.New("quiz not found")

	// ErrNotFound covers other unresolvable references (questions,
	// choices, users).
	ErrNotFound = errors.New("not found")
)

// IsInsufficientData reports whether err is one of the generation
// precondition failures.
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrNoSamples) || errors.Is(err, ErrNotEnoughLabels)
}
