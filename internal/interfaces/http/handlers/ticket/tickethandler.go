package ticket

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/domain/permission"
	domain "github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/shared/errors"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

// ListTickets handles GET /tickets. Scope is chosen by the first present of
// creator, assignee, queue and a concrete status; customers only ever see
// tickets they created.
func (h *Handler) ListTickets(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}

	filter, sort, err := ParseListQuery(c, h.locale)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	tickets, err := h.scopedTickets(c, who)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	tickets = domain.FilterTickets(tickets, filter, sort)
	utils.ListSuccessResponse(c, h.mapper.Tickets(tickets), len(tickets))
}

func (h *Handler) scopedTickets(c *gin.Context, who caller) ([]*domain.Ticket, error) {
	ctx := c.Request.Context()
	if !who.isStaff() {
		return h.tickets.GetTicketsByCreator(ctx, who.id)
	}

	if raw := c.Query("creator"); raw != "" {
		id, err := parseUserQuery(raw, who)
		if err != nil {
			return nil, err
		}
		return h.tickets.GetTicketsByCreator(ctx, id)
	}
	if raw := c.Query("assignee"); raw != "" {
		id, err := parseUserQuery(raw, who)
		if err != nil {
			return nil, err
		}
		return h.tickets.GetTicketsByAssignee(ctx, id)
	}
	if raw := c.Query("queue"); raw != "" {
		queueID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || queueID == 0 {
			return nil, errors.NewValidationError("invalid queue ID")
		}
		return h.tickets.GetTicketsByQueue(ctx, uint(queueID))
	}
	if status := c.Query("status"); status != "" && status != domain.FilterAll {
		return h.tickets.GetTicketsByStatus(ctx, status)
	}
	return h.tickets.GetAllTickets(ctx)
}

// parseUserQuery accepts a user id or "me".
func parseUserQuery(raw string, who caller) (uuid.UUID, error) {
	if raw == "me" {
		return who.id, nil
	}
	return ParseAssignee(raw)
}

// CreateTicket handles POST /tickets
func (h *Handler) CreateTicket(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	ctx := c.Request.Context()
	tagIDs, err := h.resolveTagIDs(ctx, req.TagIDs, req.Tags)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	t, err := h.tickets.CreateTicket(ctx, req.ToInput(who.id), tagIDs)
	if err != nil {
		if t == nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		// the ticket row exists; report the tag failure alongside it
		h.logger.Warnw("ticket created with missing tags", "ticket_id", t.ID(), "error", err)
		utils.SuccessResponse(c, http.StatusCreated, err.Error(), h.mapper.Ticket(t))
		return
	}

	h.logger.Infow("ticket created", "ticket_id", t.ID(), "creator_id", who.id)
	utils.CreatedResponse(c, h.mapper.Ticket(t), "Ticket created successfully")
}

func (h *Handler) resolveTagIDs(ctx context.Context, ids []uint, names []string) ([]uint, error) {
	out := append([]uint(nil), ids...)
	for _, name := range names {
		tag, err := h.tags.EnsureTag(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, tag.ID())
	}
	return out, nil
}

// GetTicket handles GET /tickets/:id. Agent-only messages are dropped for
// roles that may not read them.
func (h *Handler) GetTicket(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}
	t, ok := h.loadTicket(c, who)
	if !ok {
		return
	}

	details, err := h.tickets.GetTicketDetails(c.Request.Context(), t.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if details == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("ticket not found"))
		return
	}

	details.Messages = h.visibleMessages(who, details.Messages)
	utils.SuccessResponse(c, http.StatusOK, "", h.mapper.Details(details))
}

// UpdateTicket handles PUT /tickets/:id
func (h *Handler) UpdateTicket(c *gin.Context) {
	who, ok := currentCaller(c)
	if !ok {
		return
	}
	t, ok := h.loadTicket(c, who)
	if !ok {
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	in := crm.TicketInput{
		ID:          t.ID(),
		Title:       req.Title,
		Description: req.Description,
		Status:      orDefault(req.Status, t.Status().String()),
		Priority:    orDefault(req.Priority, t.Priority().String()),
		Type:        orDefault(req.Type, t.Type().String()),
		CreatorID:   t.CreatorID(),
		AssigneeID:  t.AssigneeID(),
		QueueID:     t.QueueID(),
	}
	if req.AssigneeID != nil {
		assignee, err := ParseAssignee(*req.AssigneeID)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		in.AssigneeID = assignee
	}
	if req.QueueID != nil {
		in.QueueID = req.QueueID
	}

	updated, err := h.tickets.UpsertTicket(c.Request.Context(), in)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	updated.SetTags(t.Tags())

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", h.mapper.Ticket(updated))
}

// AssignTicket handles PATCH /tickets/:id/assignee
func (h *Handler) AssignTicket(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}
	assignee, err := ParseAssignee(req.AssigneeID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.tickets.AssignTicket(c.Request.Context(), id, assignee); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", nil)
}

// UpdateTicketQueue handles PATCH /tickets/:id/queue
func (h *Handler) UpdateTicketQueue(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	if err := h.tickets.UpdateTicketQueue(c.Request.Context(), id, req.QueueID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ticket queue updated successfully", nil)
}

// UpdateTicketPriority handles PATCH /tickets/:id/priority
func (h *Handler) UpdateTicketPriority(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	if err := h.tickets.UpdateTicketPriority(c.Request.Context(), id, req.Priority); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ticket priority updated successfully", nil)
}

// UpdateTicketStatus handles PATCH /tickets/:id/status
func (h *Handler) UpdateTicketStatus(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket status", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	if err := h.tickets.UpdateTicketStatus(c.Request.Context(), id, req.Status); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated successfully", nil)
}

func (h *Handler) visibleMessages(who caller, views []crm.MessageView) []crm.MessageView {
	if h.can(who, permission.ObjectAgentOnlyMessage, permission.ActionRead) {
		return views
	}
	out := make([]crm.MessageView, 0, len(views))
	for _, v := range views {
		if !v.Message.IsAgentOnly() {
			out = append(out, v)
		}
	}
	return out
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
