package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/interfaces/dto"
	"github.com/autocrm/autocrm/internal/shared/errors"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

// ListTags handles GET /tags
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tags.GetAllTags(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, dto.ToTagDTOs(tags), len(tags))
}

// CreateTag handles POST /tags
func (h *Handler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	tag, err := h.tags.CreateTag(c.Request.Context(), req.Tag)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, dto.ToTagDTO(tag), "Tag created successfully")
}

// ListTicketTags handles GET /tickets/:id/tags
func (h *Handler) ListTicketTags(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}
	t, ok := h.loadTicket(c, who)
	if !ok {
		return
	}

	tags, err := h.tags.GetTagsForTicket(c.Request.Context(), t.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, dto.ToTagDTOs(tags), len(tags))
}

// AddTicketTag handles POST /tickets/:id/tags
func (h *Handler) AddTicketTag(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}
	t, ok := h.loadTicket(c, who)
	if !ok {
		return
	}

	var req AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	ctx := c.Request.Context()
	tagID := req.TagID
	if tagID == 0 {
		if req.Tag == "" {
			utils.ErrorResponseWithError(c, errors.NewValidationError("tag_id or tag is required"))
			return
		}
		tag, err := h.tags.EnsureTag(ctx, req.Tag)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		tagID = tag.ID()
	}

	if err := h.tags.AddTag(ctx, t.ID(), tagID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	tags, err := h.tags.GetTagsForTicket(ctx, t.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Tag added successfully", dto.ToTagDTOs(tags))
}

// RemoveTicketTag handles DELETE /tickets/:id/tags/:tag_id
func (h *Handler) RemoveTicketTag(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}
	t, ok := h.loadTicket(c, who)
	if !ok {
		return
	}
	tagID, err := utils.ParseIDParam(c, "tag_id", "tag")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.tags.RemoveTag(c.Request.Context(), t.ID(), tagID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
