package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/interfaces/dto"
	"github.com/autocrm/autocrm/internal/interfaces/http/handlers/common"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

// ProfileHandler handles the caller's own profile
type ProfileHandler struct {
	users  userService
	logger logger.Interface
}

func NewProfileHandler(users userService, logger logger.Interface) *ProfileHandler {
	return &ProfileHandler{
		users:  users,
		logger: logger,
	}
}

type UpdateProfileRequest struct {
	FirstName    string `json:"first_name" binding:"max=100"`
	LastName     string `json:"last_name" binding:"max=100"`
	FriendlyName string `json:"friendly_name" binding:"max=100"`
}

// UpdateProfile handles PUT /profile. Email and role are never taken from
// the request.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := utils.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	u, err := h.users.UpsertUser(c.Request.Context(), crm.UserInput{
		ID:           userID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		FriendlyName: req.FriendlyName,
	})
	if err != nil {
		h.logger.Errorw("failed to update profile", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", dto.ToUserDTO(u))
}

// UploadPicture handles POST /profile/picture with a multipart "file" field.
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	userID, ok := utils.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	up, closeFn, ok := common.FormUpload(c)
	if !ok {
		return
	}
	defer closeFn()

	u, err := h.users.UploadProfilePicture(c.Request.Context(), userID, up)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Profile picture updated successfully", dto.ToUserDTO(u))
}
