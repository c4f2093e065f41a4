// Package queue models the work queues tickets are routed into.
package queue

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/shared/biztime"
)

const maxNameLength = 100

type Queue struct {
	id          uint
	name        string
	description string
	createdAt   time.Time
}

func NewQueue(name, description string) (*Queue, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("queue name is required")
	}
	if len(name) > maxNameLength {
		return nil, fmt.Errorf("queue name exceeds maximum length of %d characters", maxNameLength)
	}
	return &Queue{
		name:        name,
		description: strings.TrimSpace(description),
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructQueue(id uint, name, description string, createdAt time.Time) (*Queue, error) {
	if id == 0 {
		return nil, fmt.Errorf("queue ID cannot be zero")
	}
	return &Queue{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
	}, nil
}

func (q *Queue) ID() uint {
	return q.id
}

func (q *Queue) Name() string {
	return q.name
}

func (q *Queue) Description() string {
	return q.description
}

func (q *Queue) CreatedAt() time.Time {
	return q.createdAt
}

func (q *Queue) SetID(id uint) error {
	if q.id != 0 && q.id != id {
		return fmt.Errorf("queue ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("queue ID cannot be zero")
	}
	q.id = id
	return nil
}

func (q *Queue) SetCreatedAt(createdAt time.Time) {
	q.createdAt = createdAt
}

// Membership links a staff member to a queue they work.
type Membership struct {
	UserID    uuid.UUID
	QueueID   uint
	CreatedAt time.Time
}

func NewMembership(userID uuid.UUID, queueID uint) (Membership, error) {
	if userID == uuid.Nil {
		return Membership{}, fmt.Errorf("user ID is required")
	}
	if queueID == 0 {
		return Membership{}, fmt.Errorf("queue ID is required")
	}
	return Membership{UserID: userID, QueueID: queueID, CreatedAt: biztime.NowUTC()}, nil
}
