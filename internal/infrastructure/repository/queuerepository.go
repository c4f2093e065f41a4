package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/autocrm/autocrm/internal/domain/queue"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/mappers"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
	"github.com/autocrm/autocrm/internal/shared/mapper"
)

type QueueRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewQueueRepository(db *gorm.DB) *QueueRepository {
	return &QueueRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *QueueRepository) Create(ctx context.Context, q *queue.Queue) error {
	model := r.mapper.QueueToModel(q)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create queue: %w", err)
	}
	if err := q.SetID(model.ID); err != nil {
		return err
	}
	q.SetCreatedAt(model.CreatedAt.UTC())
	return nil
}

func (r *QueueRepository) List(ctx context.Context) ([]*queue.Queue, error) {
	var queueModels []models.QueueModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&queueModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list queues: %w", err)
	}
	return r.toEntities(queueModels)
}

func (r *QueueRepository) GetByName(ctx context.Context, name string) (*queue.Queue, error) {
	var model models.QueueModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get queue: %w", err)
	}
	return r.mapper.QueueToEntity(&model)
}

func (r *QueueRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*queue.Queue, error) {
	var queueModels []models.QueueModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_queues ON user_queues.queue_id = queues.id").
		Where("user_queues.user_id = ?", userID.String()).
		Order("queues.name ASC").
		Find(&queueModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list queues for user: %w", err)
	}
	return r.toEntities(queueModels)
}

func (r *QueueRepository) AddMember(ctx context.Context, m queue.Membership) error {
	model := &models.UserQueueModel{
		UserID:    m.UserID.String(),
		QueueID:   m.QueueID,
		CreatedAt: m.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add queue member: %w", err)
	}
	return nil
}

func (r *QueueRepository) RemoveMember(ctx context.Context, userID uuid.UUID, queueID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND queue_id = ?", userID.String(), queueID).
		Delete(&models.UserQueueModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove queue member: %w", err)
	}
	return nil
}

func (r *QueueRepository) toEntities(queueModels []models.QueueModel) ([]*queue.Queue, error) {
	return mapper.MapSliceErr(queueModels, func(m models.QueueModel) (*queue.Queue, error) {
		return r.mapper.QueueToEntity(&m)
	})
}
