package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository reads and writes the users table.
type Repository interface {
	// Get returns (nil, nil) when no row has the id.
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	// GetMany returns the users found among ids; missing ids are skipped.
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*User, error)
	List(ctx context.Context) ([]*User, error)
	// Upsert inserts the row or overwrites it on id conflict.
	Upsert(ctx context.Context, user *User) error
}
