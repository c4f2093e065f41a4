package http

import (
	"github.com/autocrm/autocrm/internal/interfaces/dto"
	"github.com/autocrm/autocrm/internal/interfaces/http/handlers"
	ticketHandlers "github.com/autocrm/autocrm/internal/interfaces/http/handlers/ticket"
	"github.com/autocrm/autocrm/internal/interfaces/http/middleware"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// User & Auth
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	profileHandler *handlers.ProfileHandler

	// Tickets
	ticketHandler    *ticketHandlers.Handler
	dashboardHandler *handlers.DashboardHandler

	// Queues
	queueHandler *handlers.QueueHandler

	// System
	diagnosticsHandler *handlers.DiagnosticsHandler
}

func (c *Container) initHandlers() {
	mapper := dto.NewTicketMapper(c.markdown)
	locale := c.cfg.UI.LanguageTag()

	c.hdlrs = &allHandlers{
		authHandler:        handlers.NewAuthHandler(c.crmService, c.crmService, c.log.Named("auth")),
		userHandler:        handlers.NewUserHandler(c.crmService, c.log.Named("users")),
		profileHandler:     handlers.NewProfileHandler(c.crmService, c.log.Named("profile")),
		ticketHandler:      ticketHandlers.NewHandler(c.crmService, c.enforcer, mapper, locale, c.log.Named("tickets")),
		dashboardHandler:   handlers.NewDashboardHandler(c.crmService, mapper, locale, c.log.Named("dashboard")),
		queueHandler:       handlers.NewQueueHandler(c.crmService, c.log.Named("queues")),
		diagnosticsHandler: handlers.NewDiagnosticsHandler(c.crmService, c.version, c.log.Named("diagnostics")),
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.tokenVerifier, c.crmService, c.log.Named("auth"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log.Named("permission"))
}
