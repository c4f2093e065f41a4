package http

import (
	"github.com/autocrm/autocrm/internal/domain/queue"
	"github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	ticketRepo  ticket.Repository
	messageRepo ticket.MessageRepository
	tagRepo     ticket.TagRepository
	fileRepo    ticket.FileRepository
	userRepo    user.Repository
	queueRepo   queue.Repository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		ticketRepo:  repository.NewTicketRepository(c.db),
		messageRepo: repository.NewMessageRepository(c.db),
		tagRepo:     repository.NewTagRepository(c.db),
		fileRepo:    repository.NewTicketFileRepository(c.db),
		userRepo:    repository.NewUserRepository(c.db, c.log),
		queueRepo:   repository.NewQueueRepository(c.db),
	}
}
