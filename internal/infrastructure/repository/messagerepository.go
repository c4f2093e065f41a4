package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/mappers"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
	"github.com/autocrm/autocrm/internal/shared/mapper"
)

type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *MessageRepository) Create(ctx context.Context, m *ticket.Message) error {
	model := r.mapper.MessageToModel(m)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	if err := m.SetID(model.ID); err != nil {
		return err
	}
	m.SetCreatedAt(model.CreatedAt.UTC())
	return nil
}

func (r *MessageRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	var messageModels []models.MessageModel
	if err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return mapper.MapSliceErr(messageModels, func(m models.MessageModel) (*ticket.Message, error) {
		return r.mapper.MessageToDomain(&m)
	})
}
