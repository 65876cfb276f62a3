package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestToDomainErrorPassesThroughDomainError(t *testing.T) {
	original := NewValidationError("bad input", map[string]any{"field": "email"})
	mapped := ToDomainError(fmt.Errorf("handler: %w", original))
	if mapped.Code != "VALIDATION_FAILED" {
		t.Fatalf("code = %s, want VALIDATION_FAILED", mapped.Code)
	}
	if mapped.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", mapped.HTTPStatus, http.StatusBadRequest)
	}
}

func TestToDomainErrorMapsNoRowsToNotFound(t *testing.T) {
	mapped := ToDomainError(fmt.Errorf("query firm: %w", pgx.ErrNoRows))
	if mapped.Code != "NOT_FOUND" {
		t.Fatalf("code = %s, want NOT_FOUND", mapped.Code)
	}
	if mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", mapped.HTTPStatus, http.StatusNotFound)
	}
}

func TestToDomainErrorMapsUniqueViolationToConflict(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_invitations_pending_unique"}
	mapped := ToDomainError(fmt.Errorf("insert invitation: %w", pgErr))
	if mapped.Code != "CONFLICT" {
		t.Fatalf("code = %s, want CONFLICT", mapped.Code)
	}
	if mapped.HTTPStatus != http.StatusConflict {
		t.Fatalf("status = %d, want %d", mapped.HTTPStatus, http.StatusConflict)
	}
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	mapped := ToDomainError(errors.New("connection refused"))
	if mapped.Code != "INTERNAL_ERROR" {
		t.Fatalf("code = %s, want INTERNAL_ERROR", mapped.Code)
	}
	if mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", mapped.HTTPStatus, http.StatusInternalServerError)
	}
}
