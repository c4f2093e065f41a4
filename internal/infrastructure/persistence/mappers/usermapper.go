package mappers

import (
	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/domain/queue"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/infrastructure/persistence/models"
	"github.com/autocrm/autocrm/internal/shared/constants"
)

// UserMapper handles the conversion between user and queue entities and persistence models.
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
	QueueToEntity(model *models.QueueModel) (*queue.Queue, error)
	QueueToModel(entity *queue.Queue) *models.QueueModel
}

// UserMapperImpl is the concrete implementation of UserMapper
type UserMapperImpl struct{}

// NewUserMapper creates a new user mapper
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

// ToEntity decodes a users row. Email is not re-validated: rows created by
// older clients may hold addresses the current rules reject.
func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, rowError(constants.TableUsers, "id", model.ID, err)
	}
	role, err := user.NewRole(model.Role)
	if err != nil {
		return nil, rowError(constants.TableUsers, "role", model.Role, err)
	}

	return user.ReconstructUser(
		id,
		deref(model.Email),
		deref(model.FirstName),
		deref(model.LastName),
		deref(model.FriendlyName),
		role,
		deref(model.ProfilePictureURL),
		model.CreatedAt.UTC(),
	)
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                entity.ID().String(),
		Email:             optionalString(entity.Email()),
		FirstName:         ptr(entity.FirstName()),
		LastName:          ptr(entity.LastName()),
		FriendlyName:      optionalString(entity.FriendlyName()),
		Role:              entity.Role().String(),
		ProfilePictureURL: optionalString(entity.ProfilePictureURL()),
		CreatedAt:         entity.CreatedAt(),
	}
}

func (m *UserMapperImpl) QueueToEntity(model *models.QueueModel) (*queue.Queue, error) {
	if model == nil {
		return nil, nil
	}
	q, err := queue.ReconstructQueue(model.ID, model.Name, deref(model.Description), model.CreatedAt.UTC())
	if err != nil {
		return nil, rowError(constants.TableQueues, "id", model.ID, err)
	}
	return q, nil
}

func (m *UserMapperImpl) QueueToModel(entity *queue.Queue) *models.QueueModel {
	return &models.QueueModel{
		ID:          entity.ID(),
		Name:        entity.Name(),
		Description: optionalString(entity.Description()),
		CreatedAt:   entity.CreatedAt(),
	}
}
