package crm

import (
	"context"

	"github.com/autocrm/autocrm/internal/domain/ticket"
	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/shared/errors"
)

// GetMessagesOnTicket returns the thread oldest first with senders resolved.
func (s *Service) GetMessagesOnTicket(ctx context.Context, ticketID uint) ([]MessageView, error) {
	messages, err := s.deps.Messages.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, errors.NewBackendError("failed to list messages", err)
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		sender, err := s.resolveUser(ctx, m.SenderID())
		if err != nil {
			return nil, err
		}
		views = append(views, MessageView{Message: m, Sender: sender})
	}
	return views, nil
}

func (s *Service) AddMessage(ctx context.Context, in MessageInput) (*ticket.Message, error) {
	messageType := vo.MessagePublic
	if in.Type != "" {
		mt, err := vo.NewMessageType(in.Type)
		if err != nil {
			return nil, errors.NewValidationError("invalid message type", err.Error())
		}
		messageType = mt
	}

	m, err := ticket.NewMessage(in.TicketID, in.SenderID, in.Text, messageType)
	if err != nil {
		return nil, errors.NewValidationError("invalid message", err.Error())
	}
	if err := s.deps.Messages.Create(ctx, m); err != nil {
		return nil, errors.NewBackendError("failed to add message", err)
	}
	s.logger.Debugw("message added", "ticket_id", in.TicketID, "message_id", m.ID(), "type", messageType.String())
	return m, nil
}
