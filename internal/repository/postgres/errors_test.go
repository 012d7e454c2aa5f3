package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "foreign key violation",
			err:      &pgconn.PgError{Code: pgCodeForeignKeyViolation, ConstraintName: "fk_project"},
			sentinel: domain.ErrConstraint,
		},
		{
			name:     "unique violation",
			err:      &pgconn.PgError{Code: pgCodeUniqueViolation},
			sentinel: domain.ErrConstraint,
		},
		{
			name:     "wrapped pg error",
			err:      fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgCodeForeignKeyViolation}),
			sentinel: domain.ErrConstraint,
		},
		{
			name:     "domain not found passes through",
			err:      domain.NewNotFoundError("project", 1),
			sentinel: domain.ErrNotFound,
		},
		{
			name:     "domain validation passes through",
			err:      domain.NewValidationError("bad", "name"),
			sentinel: domain.ErrValidation,
		},
		{
			name:     "nested transaction passes through",
			err:      domain.ErrNestedTransaction,
			sentinel: domain.ErrNestedTransaction,
		},
		{
			name:     "pool exhausted passes through",
			err:      &domain.PoolExhaustedError{Message: "acquire timed out"},
			sentinel: domain.ErrPoolExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err, "test op")
			if !errors.Is(got, tt.sentinel) {
				t.Errorf("translateError() = %v, does not match %v", got, tt.sentinel)
			}
		})
	}
}

func TestTranslateErrorPassThrough(t *testing.T) {
	if translateError(nil, "op") != nil {
		t.Error("translateError(nil) != nil")
	}

	plain := errors.New("boom")
	got := translateError(plain, "create project")
	if !errors.Is(got, plain) {
		t.Error("unknown errors must stay unwrappable to the original")
	}
	if got.Error() != "create project: boom" {
		t.Errorf("got %q, want the op prefix", got.Error())
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsNoRowsError(fmt.Errorf("scan: %w", pgx.ErrNoRows)) {
		t.Error("IsNoRowsError missed a wrapped ErrNoRows")
	}
	if IsNoRowsError(errors.New("other")) {
		t.Error("IsNoRowsError matched an unrelated error")
	}

	dup := &pgconn.PgError{Code: pgCodeUniqueViolation}
	if !IsDuplicateError(dup) || IsForeignKeyError(dup) {
		t.Error("duplicate-key predicate mismatch")
	}
	fk := &pgconn.PgError{Code: pgCodeForeignKeyViolation}
	if !IsForeignKeyError(fk) || IsDuplicateError(fk) {
		t.Error("foreign-key predicate mismatch")
	}
}

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")
	if tables.Projects != "test_projects" {
		t.Errorf("Projects = %q, want test_projects", tables.Projects)
	}
	if tables.TextSources != "test_text_sources" {
		t.Errorf("TextSources = %q, want test_text_sources", tables.TextSources)
	}
	if tables.Links != "test_links" {
		t.Errorf("Links = %q, want test_links", tables.Links)
	}

	bare := NewTableNames("")
	if bare.Translations != "translations" {
		t.Errorf("Translations = %q, want translations", bare.Translations)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 100, 0},
		{-5, -3, 100, 0},
		{25, 50, 25, 50},
		{100000, 0, 100000, 0},
	}
	for _, tt := range tests {
		gotLimit, gotOffset := clampPage(tt.limit, tt.offset)
		if gotLimit != tt.wantLimit || gotOffset != tt.wantOffset {
			t.Errorf("clampPage(%d, %d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, gotLimit, gotOffset, tt.wantLimit, tt.wantOffset)
		}
	}
}
