package crm

import (
	"context"

	"github.com/autocrm/autocrm/internal/shared/errors"
)

// Ping checks that the database answers.
func (s *Service) Ping(ctx context.Context) error {
	if s.deps.Database == nil {
		return errors.NewInternalError("database is not configured")
	}
	if err := s.deps.Database.PingContext(ctx); err != nil {
		return errors.NewBackendError("failed to reach database", err)
	}
	return nil
}
