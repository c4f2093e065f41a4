package mappers

import (
	"fmt"

	"github.com/google/uuid"
)

// RowError reports a remote row that does not decode into a domain record.
type RowError struct {
	Table string
	Field string
	Value any
	Err   error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s row: field %s=%v: %v", e.Table, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed %s row: field %s=%v", e.Table, e.Field, e.Value)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

func rowError(table, field string, value any, err error) *RowError {
	return &RowError{Table: table, Field: field, Value: value, Err: err}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	return &s
}

// optionalString stores "" as NULL.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseUserRef decodes a nullable user id column; NULL is the sentinel.
func parseUserRef(table, field string, raw *string) (uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return uuid.Nil, rowError(table, field, *raw, err)
	}
	return id, nil
}

// userRef encodes a user id; the sentinel is written explicitly, never as NULL.
func userRef(id uuid.UUID) *string {
	return ptr(id.String())
}
