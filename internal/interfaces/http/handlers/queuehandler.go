package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/domain/queue"
	"github.com/autocrm/autocrm/internal/interfaces/dto"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

type queueService interface {
	CreateQueue(ctx context.Context, name, description string) (*queue.Queue, error)
	GetAllQueues(ctx context.Context) ([]*queue.Queue, error)
	GetUserQueues(ctx context.Context, userID uuid.UUID) ([]*queue.Queue, error)
	AssignUserToQueue(ctx context.Context, userID uuid.UUID, queueID uint) error
	UnassignUserFromQueue(ctx context.Context, userID uuid.UUID, queueID uint) error
}

type QueueHandler struct {
	queues queueService
	logger logger.Interface
}

func NewQueueHandler(queues queueService, logger logger.Interface) *QueueHandler {
	return &QueueHandler{
		queues: queues,
		logger: logger,
	}
}

type CreateQueueRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// ListQueues handles GET /queues
func (h *QueueHandler) ListQueues(c *gin.Context) {
	queues, err := h.queues.GetAllQueues(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, dto.ToQueueDTOs(queues), len(queues))
}

// CreateQueue handles POST /queues
func (h *QueueHandler) CreateQueue(c *gin.Context) {
	var req CreateQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	q, err := h.queues.CreateQueue(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.logger.Infow("queue created", "queue_id", q.ID(), "name", q.Name())
	utils.CreatedResponse(c, dto.ToQueueDTO(q), "Queue created successfully")
}

// ListUserQueues handles GET /users/:id/queues
func (h *QueueHandler) ListUserQueues(c *gin.Context) {
	userID, err := utils.ParseUUIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	queues, err := h.queues.GetUserQueues(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, dto.ToQueueDTOs(queues), len(queues))
}

// AssignUser handles POST /users/:id/queues/:queue_id
func (h *QueueHandler) AssignUser(c *gin.Context) {
	userID, queueID, ok := membershipParams(c)
	if !ok {
		return
	}

	if err := h.queues.AssignUserToQueue(c.Request.Context(), userID, queueID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "User assigned to queue", nil)
}

// UnassignUser handles DELETE /users/:id/queues/:queue_id
func (h *QueueHandler) UnassignUser(c *gin.Context) {
	userID, queueID, ok := membershipParams(c)
	if !ok {
		return
	}

	if err := h.queues.UnassignUserFromQueue(c.Request.Context(), userID, queueID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

func membershipParams(c *gin.Context) (uuid.UUID, uint, bool) {
	userID, err := utils.ParseUUIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return uuid.Nil, 0, false
	}
	queueID, err := utils.ParseIDParam(c, "queue_id", "queue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return uuid.Nil, 0, false
	}
	return userID, queueID, true
}
