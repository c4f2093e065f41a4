package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/domain/queue"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

func (s *Service) CreateQueue(ctx context.Context, name, description string) (*queue.Queue, error) {
	q, err := queue.NewQueue(name, description)
	if err != nil {
		return nil, errors.NewValidationError("invalid queue", err.Error())
	}
	if err := s.deps.Queues.Create(ctx, q); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("queue already exists", q.Name())
		}
		return nil, errors.NewBackendError("failed to create queue", err)
	}
	s.logger.Infow("queue created", "queue_id", q.ID(), "name", q.Name())
	return q, nil
}

func (s *Service) GetAllQueues(ctx context.Context) ([]*queue.Queue, error) {
	queues, err := s.deps.Queues.List(ctx)
	if err != nil {
		return nil, errors.NewBackendError("failed to list queues", err)
	}
	return queues, nil
}

// GetQueueByName returns (nil, nil) when no queue has the name.
func (s *Service) GetQueueByName(ctx context.Context, name string) (*queue.Queue, error) {
	q, err := s.deps.Queues.GetByName(ctx, name)
	if err != nil {
		return nil, errors.NewBackendError("failed to get queue", err)
	}
	return q, nil
}

func (s *Service) GetUserQueues(ctx context.Context, userID uuid.UUID) ([]*queue.Queue, error) {
	queues, err := s.deps.Queues.ListForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewBackendError("failed to list user queues", err)
	}
	return queues, nil
}

func (s *Service) AssignUserToQueue(ctx context.Context, userID uuid.UUID, queueID uint) error {
	membership, err := queue.NewMembership(userID, queueID)
	if err != nil {
		return errors.NewValidationError("invalid queue membership", err.Error())
	}
	if err := s.deps.Queues.AddMember(ctx, membership); err != nil {
		return errors.NewBackendError("failed to assign user to queue", err)
	}
	return nil
}

func (s *Service) UnassignUserFromQueue(ctx context.Context, userID uuid.UUID, queueID uint) error {
	if err := s.deps.Queues.RemoveMember(ctx, userID, queueID); err != nil {
		return errors.NewBackendError("failed to unassign user from queue", err)
	}
	return nil
}
