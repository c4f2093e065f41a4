package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	domain "github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/interfaces/dto"
	"github.com/autocrm/autocrm/internal/interfaces/http/handlers/ticket"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

type dashboardService interface {
	GetTicketsByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error)
	GetTicketsByAssignee(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error)
}

// DashboardHandler handles user dashboard HTTP requests
type DashboardHandler struct {
	tickets dashboardService
	mapper  *dto.TicketMapper
	locale  language.Tag
	logger  logger.Interface
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(
	tickets dashboardService,
	mapper *dto.TicketMapper,
	locale language.Tag,
	logger logger.Interface,
) *DashboardHandler {
	return &DashboardHandler{
		tickets: tickets,
		mapper:  mapper,
		locale:  locale,
		logger:  logger,
	}
}

type DashboardResponse struct {
	Assigned []*dto.TicketDTO `json:"assigned"`
	Created  []*dto.TicketDTO `json:"created"`
}

// GetDashboard handles GET /dashboard. Both lists honour the same filter and
// sort query as GET /tickets.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := utils.GetUserID(c)
	if !ok {
		h.logger.Error("user_id not found in context")
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	filter, sort, err := ticket.ParseListQuery(c, h.locale)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var assigned, created []*domain.Ticket
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		assigned, err = h.tickets.GetTicketsByAssignee(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		created, err = h.tickets.GetTicketsByCreator(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.Errorw("failed to load dashboard", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", DashboardResponse{
		Assigned: h.mapper.Tickets(domain.FilterTickets(assigned, filter, sort)),
		Created:  h.mapper.Tickets(domain.FilterTickets(created, filter, sort)),
	})
}
