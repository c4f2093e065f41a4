package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/domain/permission"
	"github.com/autocrm/autocrm/internal/interfaces/http/handlers"
	tickethandlers "github.com/autocrm/autocrm/internal/interfaces/http/handlers/ticket"
	"github.com/autocrm/autocrm/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.Handler
	DashboardHandler     *handlers.DashboardHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(api gin.IRouter, config *TicketRouteConfig) {
	h := config.TicketHandler
	require := config.PermissionMiddleware.RequirePermission

	authed := api.Group("")
	authed.Use(config.AuthMiddleware.RequireAuth())

	authed.GET("/dashboard", config.DashboardHandler.GetDashboard)

	tickets := authed.Group("/tickets")
	{
		tickets.GET("",
			require(permission.ObjectTicket, permission.ActionRead),
			h.ListTickets)
		tickets.POST("",
			require(permission.ObjectTicket, permission.ActionCreate),
			h.CreateTicket)

		tickets.PATCH("/:id/assignee",
			require(permission.ObjectTicket, permission.ActionAssign),
			h.AssignTicket)
		tickets.PATCH("/:id/queue",
			require(permission.ObjectTicket, permission.ActionUpdate),
			h.UpdateTicketQueue)
		tickets.PATCH("/:id/priority",
			require(permission.ObjectTicket, permission.ActionUpdate),
			h.UpdateTicketPriority)
		tickets.PATCH("/:id/status",
			require(permission.ObjectTicket, permission.ActionUpdate),
			h.UpdateTicketStatus)

		tickets.GET("/:id/messages",
			require(permission.ObjectPublicMessage, permission.ActionRead),
			h.ListMessages)
		tickets.POST("/:id/messages", h.AddMessage)

		tickets.GET("/:id/tags", h.ListTicketTags)
		tickets.POST("/:id/tags",
			require(permission.ObjectTicket, permission.ActionUpdate),
			h.AddTicketTag)
		tickets.DELETE("/:id/tags/:tag_id",
			require(permission.ObjectTicket, permission.ActionUpdate),
			h.RemoveTicketTag)

		tickets.GET("/:id/files",
			require(permission.ObjectTicketFile, permission.ActionRead),
			h.ListFiles)
		tickets.POST("/:id/files",
			require(permission.ObjectTicketFile, permission.ActionCreate),
			h.UploadFile)

		tickets.GET("/:id",
			require(permission.ObjectTicket, permission.ActionRead),
			h.GetTicket)
		tickets.PUT("/:id",
			require(permission.ObjectTicket, permission.ActionUpdate),
			h.UpdateTicket)
	}

	tags := authed.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.POST("",
			require(permission.ObjectTicket, permission.ActionUpdate),
			h.CreateTag)
	}

	authed.DELETE("/files/:id",
		require(permission.ObjectTicketFile, permission.ActionDelete),
		h.DeleteFile)
}
