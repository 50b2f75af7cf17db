package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_ErrorString(t *testing.T) {
	err := ErrValidation(CodeInvalidEpsilon, "epsilon must be positive")
	want := "[validation] INVALID_EPSILON: epsilon must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	withCause := ErrState(CodeHistoryCorrupted, "decoding entry").WithCause(errors.New("bad json"))
	if got := withCause.Error(); got != "[state] HISTORY_CORRUPTED: decoding entry (bad json)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestDomainError_Is(t *testing.T) {
	err := ErrValidation(CodeInvalidEpsilon, "epsilon must be positive")

	if !errors.Is(err, ErrValidation(CodeInvalidEpsilon, "other message")) {
		t.Error("errors with same category and code should match")
	}
	if errors.Is(err, ErrValidation(CodeInvalidThreshold, "epsilon must be positive")) {
		t.Error("errors with different codes should not match")
	}
	if errors.Is(err, errors.New("epsilon must be positive")) {
		t.Error("plain errors should not match")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := ErrState(CodeHistoryCorrupted, "saving entry").WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestDomainError_WithDetail(t *testing.T) {
	err := ErrValidation(CodeTextTooShort, "response too short").
		WithDetail("min_length", 100).
		WithDetail("length", 42)

	if err.Details["min_length"] != 100 || err.Details["length"] != 42 {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestGetCategory(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"validation", ErrValidation(CodeInvalidEpsilon, "m"), ErrCatValidation},
		{"state", ErrState(CodeHistoryCorrupted, "m"), ErrCatState},
		{"not found", ErrNotFound("analysis", "abc"), ErrCatNotFound},
		{"wrapped", fmt.Errorf("loading: %w", ErrNotFound("analysis", "abc")), ErrCatNotFound},
		{"plain error", errors.New("boom"), ErrCatInternal},
		{"nil", nil, ErrCatInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCategory(tt.err); got != tt.want {
				t.Errorf("GetCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsCategory(t *testing.T) {
	err := fmt.Errorf("loading: %w", ErrNotFound("analysis", "abc"))

	if !IsCategory(err, ErrCatNotFound) {
		t.Error("wrapped not_found error should match its category")
	}
	if IsCategory(err, ErrCatValidation) {
		t.Error("not_found error should not match validation")
	}
}
