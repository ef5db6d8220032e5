package core

import (
	"fmt"
	"strings"
	"time"
)

// ExtractedCandidateData is the structured output of a successful full
// extraction.
type ExtractedCandidateData struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	TargetPosition  string   `json:"target_position"`
	Skills          []string `json:"skills"`
	YearsExperience int      `json:"years_experience"`
	Education       string   `json:"education"`
	Languages       []string `json:"languages"`
	Summary         string   `json:"summary"`
}

// CVExtractionResult carries candidate data from a completed extraction step.
type CVExtractionResult struct {
	EmailID     string
	Data        *ExtractedCandidateData
	Confidence  int
	ModelUsed   string
	ExtractedAt time.Time
}

// ExtractionErrorKind distinguishes extraction failure modes.
type ExtractionErrorKind string

const (
	// ExtractionFailed covers provider and parse errors.
	ExtractionFailed ExtractionErrorKind = "extraction_failed"
	// ExtractionTimeout is a variant of ExtractionFailed raised when the
	// provider call exceeds its deadline.
	ExtractionTimeout ExtractionErrorKind = "extraction_timeout"
)

// ExtractionError is the typed failure of a full extraction. It carries a
// message list rather than guessed data: extraction never silently falls back.
type ExtractionError struct {
	Kind     ExtractionErrorKind
	Messages []string
	Err      error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Messages, "; "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionFailed builds a provider/parse failure.
func NewExtractionFailed(err error, messages ...string) *ExtractionError {
	return &ExtractionError{Kind: ExtractionFailed, Messages: messages, Err: err}
}

// NewExtractionTimeout builds a deadline failure.
func NewExtractionTimeout(err error, messages ...string) *ExtractionError {
	return &ExtractionError{Kind: ExtractionTimeout, Messages: messages, Err: err}
}
