package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/interfaces/dto"
	"github.com/autocrm/autocrm/internal/shared/errors"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

type userService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetUserFresh(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetAllUsers(ctx context.Context) ([]*user.User, error)
	UpsertUser(ctx context.Context, in crm.UserInput) (*user.User, error)
	UploadProfilePicture(ctx context.Context, userID uuid.UUID, up crm.Upload) (*user.User, error)
}

type UserHandler struct {
	users  userService
	logger logger.Interface
}

func NewUserHandler(users userService, logger logger.Interface) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=customer agent admin"`
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.GetAllUsers(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, dto.ToUserDTOs(users), len(users))
}

// GetUser handles GET /users/:id. Customers may only look themselves up.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	callerID, _ := utils.GetUserID(c)
	if id != callerID && !user.Role(utils.GetUserRole(c)).IsStaff() {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("access to this user is forbidden"))
		return
	}

	u, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if u == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("user not found", id.String()))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dto.ToUserDTO(u))
}

// UpdateRole handles PATCH /users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	ctx := c.Request.Context()
	existing, err := h.users.GetUserFresh(ctx, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if existing == nil || existing.IsUnassigned() {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("user not found", id.String()))
		return
	}

	updated, err := h.users.UpsertUser(ctx, crm.UserInput{
		ID:           id,
		FirstName:    existing.FirstName(),
		LastName:     existing.LastName(),
		FriendlyName: existing.FriendlyName(),
		Role:         req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	callerID, _ := utils.GetUserID(c)
	h.logger.Infow("user role changed",
		"user_id", id,
		"role", req.Role,
		"changed_by", callerID,
	)
	utils.SuccessResponse(c, http.StatusOK, "User role updated successfully", dto.ToUserDTO(updated))
}
