package crm

import (
	"context"

	"github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

func (s *Service) CreateTag(ctx context.Context, text string) (*ticket.Tag, error) {
	tag, err := ticket.NewTag(text)
	if err != nil {
		return nil, errors.NewValidationError("invalid tag", err.Error())
	}
	if err := s.deps.Tags.Create(ctx, tag); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("tag already exists", tag.Text())
		}
		return nil, errors.NewBackendError("failed to create tag", err)
	}
	return tag, nil
}

// GetAllTags returns every tag ordered by text.
func (s *Service) GetAllTags(ctx context.Context) ([]*ticket.Tag, error) {
	tags, err := s.deps.Tags.List(ctx)
	if err != nil {
		return nil, errors.NewBackendError("failed to list tags", err)
	}
	return tags, nil
}

// GetTagByName returns (nil, nil) when no tag has the text.
func (s *Service) GetTagByName(ctx context.Context, text string) (*ticket.Tag, error) {
	tag, err := s.deps.Tags.GetByText(ctx, text)
	if err != nil {
		return nil, errors.NewBackendError("failed to get tag", err)
	}
	return tag, nil
}

// EnsureTag returns the tag with the given text, creating it if needed.
func (s *Service) EnsureTag(ctx context.Context, text string) (*ticket.Tag, error) {
	existing, err := s.GetTagByName(ctx, text)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	tag, err := s.CreateTag(ctx, text)
	if errors.IsConflictError(err) {
		// lost a race with another writer
		return s.GetTagByName(ctx, text)
	}
	return tag, err
}

// AddTag links a tag to a ticket; an existing link is left alone.
func (s *Service) AddTag(ctx context.Context, ticketID, tagID uint) error {
	current, err := s.deps.Tags.ListByTicket(ctx, ticketID)
	if err != nil {
		return errors.NewBackendError("failed to load ticket tags", err)
	}
	for _, t := range current {
		if t.ID() == tagID {
			return nil
		}
	}
	if err := s.deps.Tags.Attach(ctx, ticket.TicketTag{TicketID: ticketID, TagID: tagID}); err != nil {
		if errors.IsDuplicateError(err) {
			// lost a race with another writer
			return nil
		}
		return errors.NewBackendError("failed to add tag", err)
	}
	return nil
}

// RemoveTag deletes the link if present; removing an absent link succeeds.
func (s *Service) RemoveTag(ctx context.Context, ticketID, tagID uint) error {
	if err := s.deps.Tags.Detach(ctx, ticket.TicketTag{TicketID: ticketID, TagID: tagID}); err != nil {
		return errors.NewBackendError("failed to remove tag", err)
	}
	return nil
}

func (s *Service) GetTagsForTicket(ctx context.Context, ticketID uint) ([]*ticket.Tag, error) {
	tags, err := s.deps.Tags.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, errors.NewBackendError("failed to load ticket tags", err)
	}
	return tags, nil
}
