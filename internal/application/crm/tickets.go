package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/autocrm/autocrm/internal/domain/ticket"
	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

func (s *Service) GetAllTickets(ctx context.Context) ([]*ticket.Ticket, error) {
	return s.listTickets(ctx, ticket.Scope{})
}

func (s *Service) GetTicketsByCreator(ctx context.Context, userID uuid.UUID) ([]*ticket.Ticket, error) {
	return s.listTickets(ctx, ticket.Scope{CreatorID: &userID})
}

func (s *Service) GetTicketsByAssignee(ctx context.Context, userID uuid.UUID) ([]*ticket.Ticket, error) {
	return s.listTickets(ctx, ticket.Scope{AssigneeID: &userID})
}

func (s *Service) GetTicketsByQueue(ctx context.Context, queueID uint) ([]*ticket.Ticket, error) {
	return s.listTickets(ctx, ticket.Scope{QueueID: &queueID})
}

func (s *Service) GetTicketsByStatus(ctx context.Context, status string) ([]*ticket.Ticket, error) {
	st, err := vo.NewTicketStatus(status)
	if err != nil {
		return nil, errors.NewValidationError("invalid ticket status", err.Error())
	}
	return s.listTickets(ctx, ticket.Scope{Status: &st})
}

// listTickets runs the scoped select and preloads tags with one extra query.
func (s *Service) listTickets(ctx context.Context, scope ticket.Scope) ([]*ticket.Ticket, error) {
	tickets, err := s.deps.Tickets.List(ctx, scope)
	if err != nil {
		return nil, errors.NewBackendError("failed to list tickets", err)
	}
	if len(tickets) == 0 {
		return tickets, nil
	}

	ids := make([]uint, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID()
	}
	tagsByTicket, err := s.deps.Tags.ListByTickets(ctx, ids)
	if err != nil {
		return nil, errors.NewBackendError("failed to load ticket tags", err)
	}
	for _, t := range tickets {
		t.SetTags(tagsByTicket[t.ID()])
	}
	return tickets, nil
}

// GetTicket returns (nil, nil) when the ticket does not exist.
func (s *Service) GetTicket(ctx context.Context, id uint) (*ticket.Ticket, error) {
	t, err := s.deps.Tickets.Get(ctx, id)
	if err != nil {
		return nil, errors.NewBackendError("failed to get ticket", err)
	}
	if t == nil {
		return nil, nil
	}
	tags, err := s.deps.Tags.ListByTicket(ctx, id)
	if err != nil {
		return nil, errors.NewBackendError("failed to load ticket tags", err)
	}
	t.SetTags(tags)
	return t, nil
}

// GetTicketDetails loads a ticket and resolves everything the detail page
// shows. The related lookups run concurrently; the first failure cancels the
// rest. Returns (nil, nil) when the ticket does not exist.
func (s *Service) GetTicketDetails(ctx context.Context, id uint) (*TicketDetails, error) {
	t, err := s.deps.Tickets.Get(ctx, id)
	if err != nil {
		return nil, errors.NewBackendError("failed to get ticket", err)
	}
	if t == nil {
		return nil, nil
	}

	details := &TicketDetails{Ticket: t}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		creator, err := s.resolveUser(gctx, t.CreatorID())
		if err != nil {
			return fmt.Errorf("resolve creator: %w", err)
		}
		details.Creator = creator
		return nil
	})
	g.Go(func() error {
		assignee, err := s.resolveUser(gctx, t.AssigneeID())
		if err != nil {
			return fmt.Errorf("resolve assignee: %w", err)
		}
		details.Assignee = assignee
		return nil
	})
	g.Go(func() error {
		messages, err := s.GetMessagesOnTicket(gctx, id)
		if err != nil {
			return err
		}
		details.Messages = messages
		return nil
	})
	g.Go(func() error {
		tags, err := s.deps.Tags.ListByTicket(gctx, id)
		if err != nil {
			return errors.NewBackendError("failed to load ticket tags", err)
		}
		details.Tags = tags
		return nil
	})
	g.Go(func() error {
		files, err := s.deps.Files.ListByTicket(gctx, id)
		if err != nil {
			return errors.NewBackendError("failed to load ticket files", err)
		}
		details.Files = files
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warnw("ticket details failed", "ticket_id", id, "error", err)
		return nil, err
	}
	t.SetTags(details.Tags)
	return details, nil
}

// UpsertTicket inserts the ticket when in.ID is zero and overwrites the row
// otherwise. Missing enum values fall back to open, medium and support.
func (s *Service) UpsertTicket(ctx context.Context, in TicketInput) (*ticket.Ticket, error) {
	t, err := buildTicket(in)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Tickets.Upsert(ctx, t); err != nil {
		return nil, errors.NewBackendError("failed to upsert ticket", err)
	}
	s.logger.Infow("ticket saved", "ticket_id", t.ID(), "status", t.Status().String())
	return t, nil
}

// CreateTicket upserts the ticket then links each tag. A failed link leaves
// the ticket and earlier links in place.
func (s *Service) CreateTicket(ctx context.Context, in TicketInput, tagIDs []uint) (*ticket.Ticket, error) {
	t, err := s.UpsertTicket(ctx, in)
	if err != nil {
		return nil, err
	}
	for _, tagID := range tagIDs {
		if err := s.deps.Tags.Attach(ctx, ticket.TicketTag{TicketID: t.ID(), TagID: tagID}); err != nil {
			return t, errors.NewBackendError(fmt.Sprintf("failed to attach tag %d to ticket %d", tagID, t.ID()), err)
		}
	}
	if len(tagIDs) > 0 {
		tags, err := s.deps.Tags.ListByTicket(ctx, t.ID())
		if err != nil {
			return t, errors.NewBackendError("failed to load ticket tags", err)
		}
		t.SetTags(tags)
	}
	return t, nil
}

// AssignTicket sets the assignee; uuid.Nil hands the ticket back to the
// unassigned user.
func (s *Service) AssignTicket(ctx context.Context, id uint, userID uuid.UUID) error {
	if err := s.deps.Tickets.UpdateAssignee(ctx, id, userID); err != nil {
		return errors.NewBackendError("failed to assign ticket", err)
	}
	return nil
}

// UpdateTicketQueue moves the ticket; nil removes it from any queue.
func (s *Service) UpdateTicketQueue(ctx context.Context, id uint, queueID *uint) error {
	if err := s.deps.Tickets.UpdateQueue(ctx, id, queueID); err != nil {
		return errors.NewBackendError("failed to update ticket queue", err)
	}
	return nil
}

func (s *Service) UpdateTicketPriority(ctx context.Context, id uint, priority string) error {
	p, err := vo.NewPriority(priority)
	if err != nil {
		return errors.NewValidationError("invalid priority", err.Error())
	}
	if err := s.deps.Tickets.UpdatePriority(ctx, id, p); err != nil {
		return errors.NewBackendError("failed to update ticket priority", err)
	}
	return nil
}

func (s *Service) UpdateTicketStatus(ctx context.Context, id uint, status string) error {
	st, err := vo.NewTicketStatus(status)
	if err != nil {
		return errors.NewValidationError("invalid ticket status", err.Error())
	}
	if err := s.deps.Tickets.UpdateStatus(ctx, id, st); err != nil {
		return errors.NewBackendError("failed to update ticket status", err)
	}
	return nil
}

func buildTicket(in TicketInput) (*ticket.Ticket, error) {
	status, priority, ticketType := vo.StatusOpen, vo.PriorityMedium, vo.TypeSupport
	var err error
	if in.Status != "" {
		if status, err = vo.NewTicketStatus(in.Status); err != nil {
			return nil, errors.NewValidationError("invalid ticket status", err.Error())
		}
	}
	if in.Priority != "" {
		if priority, err = vo.NewPriority(in.Priority); err != nil {
			return nil, errors.NewValidationError("invalid priority", err.Error())
		}
	}
	if in.Type != "" {
		if ticketType, err = vo.NewTicketType(in.Type); err != nil {
			return nil, errors.NewValidationError("invalid ticket type", err.Error())
		}
	}

	if in.ID == 0 {
		t, err := ticket.NewTicket(in.Title, in.Description, status, priority, ticketType, in.CreatorID)
		if err != nil {
			return nil, errors.NewValidationError("invalid ticket", err.Error())
		}
		t.AssignTo(in.AssigneeID)
		t.MoveToQueue(in.QueueID)
		return t, nil
	}

	t, err := ticket.ReconstructTicket(in.ID, "", "", status, priority, ticketType,
		in.CreatorID, in.AssigneeID, in.QueueID, time.Time{}, time.Time{})
	if err != nil {
		return nil, errors.NewValidationError("invalid ticket", err.Error())
	}
	if err := t.Edit(in.Title, in.Description); err != nil {
		return nil, errors.NewValidationError("invalid ticket", err.Error())
	}
	return t, nil
}

// resolveUser maps an id to its users row. The sentinel falls back to a
// synthesised record; any other missing id is an internal error.
func (s *Service) resolveUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := s.users.get(id); ok {
		return u, nil
	}
	u, err := s.deps.Users.Get(ctx, id)
	if err != nil {
		return nil, errors.NewBackendError("failed to get user", err)
	}
	if u == nil {
		if id == user.UnassignedID {
			return user.Unassigned(), nil
		}
		return nil, errors.NewInternalError("user referenced by ticket does not exist", id.String())
	}
	s.users.put(u)
	return u, nil
}
