// Package ticket serves tickets and the records hanging off them: messages,
// tags and files.
package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/autocrm/autocrm/internal/domain/permission"
	domain "github.com/autocrm/autocrm/internal/domain/ticket"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/interfaces/dto"
	"github.com/autocrm/autocrm/internal/shared/errors"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/utils"
)

type Handler struct {
	tickets  TicketService
	messages MessageService
	tags     TagService
	files    FileService
	enforcer permission.Enforcer
	mapper   *dto.TicketMapper
	locale   language.Tag
	logger   logger.Interface
}

func NewHandler(
	svc Service,
	enforcer permission.Enforcer,
	mapper *dto.TicketMapper,
	locale language.Tag,
	logger logger.Interface,
) *Handler {
	return &Handler{
		tickets:  svc,
		messages: svc,
		tags:     svc,
		files:    svc,
		enforcer: enforcer,
		mapper:   mapper,
		locale:   locale,
		logger:   logger,
	}
}

// caller is the authenticated user as the auth middleware left it.
type caller struct {
	id   uuid.UUID
	role user.Role
}

func (c caller) isStaff() bool {
	return c.role.IsStaff()
}

func currentCaller(c *gin.Context) (caller, bool) {
	id, ok := utils.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return caller{}, false
	}
	return caller{id: id, role: user.Role(utils.GetUserRole(c))}, true
}

func (h *Handler) can(who caller, object permission.Object, action permission.Action) bool {
	allowed, err := h.enforcer.Can(who.role, object, action)
	if err != nil {
		h.logger.Errorw("permission check failed",
			"user_id", who.id,
			"object", object,
			"action", action,
			"error", err,
		)
		return false
	}
	return allowed
}

// loadTicket fetches the :id ticket and writes the error response when it is
// missing or belongs to another customer.
func (h *Handler) loadTicket(c *gin.Context, who caller) (*domain.Ticket, bool) {
	id, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return nil, false
	}

	t, err := h.tickets.GetTicket(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return nil, false
	}
	if t == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("ticket not found"))
		return nil, false
	}
	if !who.isStaff() && t.CreatorID() != who.id {
		h.logger.Warnw("ticket access denied",
			"ticket_id", id,
			"user_id", who.id,
		)
		utils.ErrorResponse(c, http.StatusForbidden, "access to this ticket is forbidden")
		return nil, false
	}
	return t, true
}

// ParseListQuery reads the filter and sort query parameters shared by every
// ticket list endpoint.
func ParseListQuery(c *gin.Context, locale language.Tag) (domain.Filter, domain.Sort, error) {
	f, err := domain.ParseFilter(c.Request.URL.Query())
	if err != nil {
		return domain.Filter{}, domain.Sort{}, err
	}
	s, err := domain.ParseSort(c.Query("sort_by"), c.Query("sort_dir"), locale)
	if err != nil {
		return domain.Filter{}, domain.Sort{}, err
	}
	return f, s, nil
}
