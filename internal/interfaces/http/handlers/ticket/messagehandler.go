package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/domain/permission"
	vo "github.com/autocrm/autocrm/internal/domain/ticket/valueobjects"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

// ListMessages handles GET /tickets/:id/messages
func (h *Handler) ListMessages(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}
	t, ok := h.loadTicket(c, who)
	if !ok {
		return
	}

	views, err := h.messages.GetMessagesOnTicket(c.Request.Context(), t.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	views = h.visibleMessages(who, views)
	utils.ListSuccessResponse(c, h.mapper.MessageViews(views), len(views))
}

// AddMessage handles POST /tickets/:id/messages
func (h *Handler) AddMessage(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}
	t, ok := h.loadTicket(c, who)
	if !ok {
		return
	}

	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add message", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	object := permission.ObjectPublicMessage
	if req.MessageType == vo.MessageAgentOnly.String() {
		object = permission.ObjectAgentOnlyMessage
	}
	if !h.can(who, object, permission.ActionCreate) {
		utils.ErrorResponse(c, http.StatusForbidden, "not allowed to post this message type")
		return
	}

	m, err := h.messages.AddMessage(c.Request.Context(), crm.MessageInput{
		TicketID: t.ID(),
		Text:     req.Text,
		SenderID: who.id,
		Type:     req.MessageType,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, h.mapper.Message(m), "Message added successfully")
}
