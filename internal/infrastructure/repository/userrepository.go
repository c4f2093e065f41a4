package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/mappers"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
	"github.com/autocrm/autocrm/internal/shared/mapper"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

// UserRepository implements user.Repository on gorm
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", keys).Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return r.toEntities(userModels)
}

// List returns every user including the sentinel, oldest first.
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return r.toEntities(userModels)
}

// Upsert inserts the user or overwrites the row with the same id.
func (r *UserRepository) Upsert(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	// an empty email or picture leaves the stored value alone
	columns := []string{"first_name", "last_name", "friendly_name", "role"}
	if model.Email != nil {
		columns = append(columns, "email")
	}
	if model.ProfilePictureURL != nil {
		columns = append(columns, "profile_picture_url")
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(model).Error; err != nil {
		r.logger.Errorw("failed to upsert user", "id", model.ID, "error", err)
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	r.logger.Debugw("user upserted", "id", model.ID, "email", utils.MaskEmail(u.Email()))
	return nil
}

func (r *UserRepository) toEntities(userModels []models.UserModel) ([]*user.User, error) {
	return mapper.MapSliceErr(userModels, func(m models.UserModel) (*user.User, error) {
		return r.mapper.ToEntity(&m)
	})
}
