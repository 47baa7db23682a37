package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deskhive/helpdesk-api/internal/container"
	handlers "github.com/deskhive/helpdesk-api/internal/interface/http"
	"github.com/deskhive/helpdesk-api/internal/interface/middleware"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
)

// TicketModule wires ticket, message and attachment routes. Everything
// requires an authenticated session.
type TicketModule struct {
	Tickets     *handlers.TicketHandler
	Messages    *handlers.MessageHandler
	Attachments *handlers.AttachmentHandler
	JWT         *helpers.JWTManager
}

func NewTicketModule(t *handlers.TicketHandler, m *handlers.MessageHandler, a *handlers.AttachmentHandler, jwt *helpers.JWTManager) *TicketModule {
	return &TicketModule{Tickets: t, Messages: m, Attachments: a, JWT: jwt}
}

func (m *TicketModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))

	tickets := auth.Group("/tickets")
	{
		tickets.GET("/getall", m.Tickets.GetAll)
		tickets.GET("/getbyid/:id", m.Tickets.GetByID)
		tickets.GET("/getbyrequester/:userId", m.Tickets.GetByRequester)
		tickets.GET("/getbyassignee/:userId", m.Tickets.GetByAssignee)
		tickets.GET("/search", m.Tickets.Search)
		tickets.POST("/create", m.Tickets.Create)
		tickets.POST("/update/:id", m.Tickets.Update)
		tickets.DELETE("/remove/:id", m.Tickets.Remove)
	}

	messages := auth.Group("/messages")
	{
		messages.GET("/getbyticket/:ticketId", m.Messages.GetByTicket)
		messages.POST("/create/:ticketId", m.Messages.Create)
		messages.POST("/update/:id", m.Messages.Update)
		messages.DELETE("/remove/:id", m.Messages.Remove)
	}

	attachments := auth.Group("/attachments")
	{
		attachments.GET("/getbyticket/:ticketId", m.Attachments.GetByTicket)
		attachments.GET("/getbyid/:id", m.Attachments.GetByID)
		attachments.POST("/upload/:ticketId", m.Attachments.Upload)
		attachments.DELETE("/remove/:id", m.Attachments.Remove)
	}
}
