package entity

import "context"

// Fields is a flat field-name to value mapping, used both as an exact-match
// predicate and as a partial update.
type Fields map[string]interface{}

// Client is the store contract for one record type.
type Client[T any] interface {
	// Create validates and persists rec, assigning its id.
	Create(ctx context.Context, rec *T) (*T, error)
	// Update applies a partial update and returns the stored record.
	Update(ctx context.Context, id string, fields Fields) (*T, error)
	// Get returns the record with the given id.
	Get(ctx context.Context, id string) (*T, error)
	// Filter returns the records whose fields equal every entry of pred,
	// ordered by sort ("field" ascending, "-field" descending).
	Filter(ctx context.Context, pred Fields, sort string) ([]T, error)
	// List is Filter with no predicate.
	List(ctx context.Context, sort string) ([]T, error)
}
