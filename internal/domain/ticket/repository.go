package ticket

import (
	"context"

	"github.com/google/uuid"

	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
)

// Repository reads and writes the tickets table. Get returns (nil, nil) when
// no row exists.
type Repository interface {
	Upsert(ctx context.Context, ticket *Ticket) error
	Get(ctx context.Context, id uint) (*Ticket, error)
	List(ctx context.Context, scope Scope) ([]*Ticket, error)
	UpdateAssignee(ctx context.Context, id uint, assigneeID uuid.UUID) error
	UpdateQueue(ctx context.Context, id uint, queueID *uint) error
	UpdatePriority(ctx context.Context, id uint, priority vo.Priority) error
	UpdateStatus(ctx context.Context, id uint, status vo.TicketStatus) error
}

// Scope is the equality predicate of a ticket list query; nil fields are ignored.
type Scope struct {
	CreatorID  *uuid.UUID
	AssigneeID *uuid.UUID
	QueueID    *uint
	Status     *vo.TicketStatus
}

type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	// ListByTicket returns messages oldest first.
	ListByTicket(ctx context.Context, ticketID uint) ([]*Message, error)
}

type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	// List returns every tag ordered by text.
	List(ctx context.Context) ([]*Tag, error)
	GetByText(ctx context.Context, text string) (*Tag, error)
	Attach(ctx context.Context, link TicketTag) error
	// Detach deletes matching join rows; zero matches is not an error.
	Detach(ctx context.Context, link TicketTag) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Tag, error)
	// ListByTickets groups tags by ticket id for list views.
	ListByTickets(ctx context.Context, ticketIDs []uint) (map[uint][]*Tag, error)
}

type FileRepository interface {
	Create(ctx context.Context, file *File) error
	Get(ctx context.Context, id uint) (*File, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*File, error)
	Delete(ctx context.Context, id uint) error
}
