package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		others   []error
	}{
		{
			name:     "validation",
			err:      NewValidationError("name is required", "name"),
			sentinel: ErrValidation,
			others:   []error{ErrNotFound, ErrConstraint},
		},
		{
			name:     "not found by id",
			err:      NewNotFoundError("project", 42),
			sentinel: ErrNotFound,
			others:   []error{ErrValidation, ErrConnection},
		},
		{
			name:     "not found by key",
			err:      NewNotFoundByKey("project", "Demo"),
			sentinel: ErrNotFound,
			others:   []error{ErrConstraint},
		},
		{
			name:     "constraint",
			err:      &ConstraintError{Message: "duplicate value", Constraint: "uq_name"},
			sentinel: ErrConstraint,
			others:   []error{ErrNotFound},
		},
		{
			name:     "connection",
			err:      &ConnectionError{Message: "dial failed"},
			sentinel: ErrConnection,
			others:   []error{ErrPoolExhausted},
		},
		{
			name:     "pool exhausted",
			err:      &PoolExhaustedError{Message: "acquire timed out"},
			sentinel: ErrPoolExhausted,
			others:   []error{ErrConnection},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tt.err)
			}
			for _, other := range tt.others {
				if errors.Is(tt.err, other) {
					t.Errorf("errors.Is(%v, %v) = true, want false", tt.err, other)
				}
			}
		})
	}
}

func TestErrorMatchingThroughWrap(t *testing.T) {
	err := fmt.Errorf("create project: %w", NewNotFoundError("project", 7))
	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped NotFoundError does not match ErrNotFound")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("wrapped error does not unwrap to NotFoundError")
	}
	if nf.Resource != "project" || nf.Key != "7" {
		t.Errorf("unexpected NotFoundError contents: %+v", nf)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("bad input", "name", "content")
	want := "bad input (fields: name, content)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := NewValidationError("bad input")
	if bare.Error() != "bad input" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "bad input")
	}
}
