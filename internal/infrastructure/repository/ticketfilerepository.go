package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/mappers"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
	"github.com/autocrm/autocrm/internal/shared/mapper"
)

type TicketFileRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketFileRepository(db *gorm.DB) *TicketFileRepository {
	return &TicketFileRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketFileRepository) Create(ctx context.Context, f *ticket.File) error {
	model := r.mapper.FileToModel(f)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket file: %w", err)
	}
	if err := f.SetID(model.ID); err != nil {
		return err
	}
	f.SetCreatedAt(model.CreatedAt.UTC())
	return nil
}

func (r *TicketFileRepository) Get(ctx context.Context, id uint) (*ticket.File, error) {
	var model models.TicketFileModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket file: %w", err)
	}
	return r.mapper.FileToDomain(&model)
}

func (r *TicketFileRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.File, error) {
	var fileModels []models.TicketFileModel
	if err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&fileModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket files: %w", err)
	}

	return mapper.MapSliceErr(fileModels, func(m models.TicketFileModel) (*ticket.File, error) {
		return r.mapper.FileToDomain(&m)
	})
}

func (r *TicketFileRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.TicketFileModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete ticket file: %w", err)
	}
	return nil
}
