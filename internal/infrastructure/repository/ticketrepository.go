package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/autocrm/autocrm/internal/domain/ticket"
	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/mappers"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
	"github.com/autocrm/autocrm/internal/shared/mapper"
)

// ticketUpsertColumns are overwritten when an upsert hits an existing id.
var ticketUpsertColumns = []string{
	"title", "description", "status", "priority", "type",
	"creator", "assignee", "queue_id", "updated_at",
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

// Upsert inserts t, or overwrites the row with the same id. The ticket
// receives its id and the stored timestamps from the database.
func (r *TicketRepository) Upsert(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	existing := model.ID != 0

	query := r.db.WithContext(ctx)
	if existing {
		query = query.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(ticketUpsertColumns),
		})
	}
	if err := query.Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert ticket: %w", err)
	}

	// created_at is not overwritten on conflict, so the value gorm filled in
	// for the insert attempt is not the stored one
	if existing {
		var stored models.TicketModel
		if err := r.db.WithContext(ctx).
			Select("created_at", "updated_at").
			First(&stored, model.ID).Error; err != nil {
			return fmt.Errorf("failed to reload ticket timestamps: %w", err)
		}
		model.CreatedAt, model.UpdatedAt = stored.CreatedAt, stored.UpdatedAt
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}
	t.SetTimestamps(model.CreatedAt.UTC(), model.UpdatedAt.UTC())
	return nil
}

func (r *TicketRepository) Get(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// List returns the tickets matching scope, newest first.
func (r *TicketRepository) List(ctx context.Context, scope ticket.Scope) ([]*ticket.Ticket, error) {
	query := r.db.WithContext(ctx).Model(&models.TicketModel{})

	if scope.CreatorID != nil {
		query = query.Where("creator = ?", scope.CreatorID.String())
	}
	if scope.AssigneeID != nil {
		if *scope.AssigneeID == uuid.Nil {
			query = query.Where("assignee = ? OR assignee IS NULL", uuid.Nil.String())
		} else {
			query = query.Where("assignee = ?", scope.AssigneeID.String())
		}
	}
	if scope.QueueID != nil {
		query = query.Where("queue_id = ?", *scope.QueueID)
	}
	if scope.Status != nil {
		if *scope.Status == vo.StatusOpen {
			query = query.Where("status = ? OR status IS NULL", vo.StatusOpen.String())
		} else {
			query = query.Where("status = ?", scope.Status.String())
		}
	}

	var ticketModels []models.TicketModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return mapper.MapSliceErr(ticketModels, func(m models.TicketModel) (*ticket.Ticket, error) {
		return r.mapper.ToDomain(&m)
	})
}

func (r *TicketRepository) UpdateAssignee(ctx context.Context, id uint, assigneeID uuid.UUID) error {
	return r.updateColumn(ctx, id, "assignee", assigneeID.String())
}

// UpdateQueue moves the ticket; a nil queueID clears the column.
func (r *TicketRepository) UpdateQueue(ctx context.Context, id uint, queueID *uint) error {
	return r.updateColumn(ctx, id, "queue_id", queueID)
}

func (r *TicketRepository) UpdatePriority(ctx context.Context, id uint, priority vo.Priority) error {
	return r.updateColumn(ctx, id, "priority", priority.String())
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id uint, status vo.TicketStatus) error {
	return r.updateColumn(ctx, id, "status", status.String())
}

// updateColumn writes one column and bumps updated_at. A missing id updates
// nothing and is not an error.
func (r *TicketRepository) updateColumn(ctx context.Context, id uint, column string, value any) error {
	result := r.db.WithContext(ctx).
		Model(&models.TicketModel{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket %s: %w", column, result.Error)
	}
	return nil
}
