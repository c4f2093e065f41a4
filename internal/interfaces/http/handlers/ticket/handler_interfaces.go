package ticket

import (
	"context"

	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/application/crm"
	domain "github.com/autocrm/autocrm/internal/domain/ticket"
)

type TicketService interface {
	GetAllTickets(ctx context.Context) ([]*domain.Ticket, error)
	GetTicketsByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error)
	GetTicketsByAssignee(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error)
	GetTicketsByQueue(ctx context.Context, queueID uint) ([]*domain.Ticket, error)
	GetTicketsByStatus(ctx context.Context, status string) ([]*domain.Ticket, error)
	GetTicket(ctx context.Context, id uint) (*domain.Ticket, error)
	GetTicketDetails(ctx context.Context, id uint) (*crm.TicketDetails, error)
	UpsertTicket(ctx context.Context, in crm.TicketInput) (*domain.Ticket, error)
	CreateTicket(ctx context.Context, in crm.TicketInput, tagIDs []uint) (*domain.Ticket, error)
	AssignTicket(ctx context.Context, id uint, userID uuid.UUID) error
	UpdateTicketQueue(ctx context.Context, id uint, queueID *uint) error
	UpdateTicketPriority(ctx context.Context, id uint, priority string) error
	UpdateTicketStatus(ctx context.Context, id uint, status string) error
}

type MessageService interface {
	GetMessagesOnTicket(ctx context.Context, ticketID uint) ([]crm.MessageView, error)
	AddMessage(ctx context.Context, in crm.MessageInput) (*domain.Message, error)
}

type TagService interface {
	CreateTag(ctx context.Context, text string) (*domain.Tag, error)
	GetAllTags(ctx context.Context) ([]*domain.Tag, error)
	EnsureTag(ctx context.Context, text string) (*domain.Tag, error)
	AddTag(ctx context.Context, ticketID, tagID uint) error
	RemoveTag(ctx context.Context, ticketID, tagID uint) error
	GetTagsForTicket(ctx context.Context, ticketID uint) ([]*domain.Tag, error)
}

type FileService interface {
	UploadTicketFile(ctx context.Context, ticketID uint, up crm.Upload) (*domain.File, error)
	GetTicketFiles(ctx context.Context, ticketID uint) ([]*domain.File, error)
	DeleteTicketFile(ctx context.Context, fileID uint) error
}

// Service is everything the ticket routes need; *crm.Service satisfies it.
type Service interface {
	TicketService
	MessageService
	TagService
	FileService
}
