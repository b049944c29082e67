package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")
)

// DuplicateSubmissionError rejects a repeat submission for the same quiz
// inside the duplicate-prevention window. It is distinct from retrieval
// failures so the caller can tell the two apart.
type DuplicateSubmissionError struct {
	LastSubmission time.Time
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("quiz already submitted at %s, wait before submitting again", e.LastSubmission.Format(time.RFC3339))
}

// InvalidQuestionError marks malformed question input during quiz creation,
// mapped to a 400 rather than a 500.
type InvalidQuestionError struct {
	Index  int
	Reason string
}

func (e *InvalidQuestionError) Error() string {
	return fmt.Sprintf("question %d: %s", e.Index, e.Reason)
}
