package queue

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, queue *Queue) error
	// List returns queues ordered by name.
	List(ctx context.Context) ([]*Queue, error)
	// GetByName returns (nil, nil) when no queue has the name.
	GetByName(ctx context.Context, name string) (*Queue, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Queue, error)
	// AddMember is idempotent for an existing membership.
	AddMember(ctx context.Context, membership Membership) error
	// RemoveMember deletes matching rows; zero matches is not an error.
	RemoveMember(ctx context.Context, userID uuid.UUID, queueID uint) error
}
