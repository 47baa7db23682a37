package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deskhive/helpdesk-api/internal/application"
	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/pkg/response"
	"github.com/deskhive/helpdesk-api/pkg/validation"
)

// MessageHandler exposes the ticket conversation thread.
type MessageHandler struct {
	Messages *application.MessageService
	Logger   *logrus.Logger
}

func NewMessageHandler(messages *application.MessageService, logger *logrus.Logger) *MessageHandler {
	return &MessageHandler{Messages: messages, Logger: logger}
}

// staffRole reports whether the authenticated role may see internal notes.
func staffRole(c *gin.Context) bool {
	switch c.GetString("userRole") {
	case entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleSupport, entity.RoleSupportManager, entity.RoleSupportTechnician:
		return true
	}
	return false
}

// GetByTicket GET /messages/getbyticket/:ticketId
func (h *MessageHandler) GetByTicket(c *gin.Context) {
	msgs, err := h.Messages.GetByTicket(c.Request.Context(), c.Param("ticketId"), staffRole(c))
	if err != nil {
		failTicketErr(c, err, "MessageHandler.GetByTicket")
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// Create POST /messages/create/:ticketId
func (h *MessageHandler) Create(c *gin.Context) {
	var dto application.CreateMessageDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, validation.Describe(err), "MessageHandler.Create")
		return
	}
	created, err := h.Messages.Create(c.Request.Context(), c.Param("ticketId"), dto)
	if err != nil {
		failTicketErr(c, err, "MessageHandler.Create")
		return
	}
	response.OK(c, created)
}

// Update POST /messages/update/:id
func (h *MessageHandler) Update(c *gin.Context) {
	var req struct {
		Body string `json:"Body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, validation.Describe(err), "MessageHandler.Update")
		return
	}
	updated, err := h.Messages.UpdateBody(c.Request.Context(), c.Param("id"), req.Body)
	if err != nil {
		failTicketErr(c, err, "MessageHandler.Update")
		return
	}
	response.OK(c, updated)
}

// Remove DELETE /messages/remove/:id
func (h *MessageHandler) Remove(c *gin.Context) {
	if err := h.Messages.Remove(c.Request.Context(), c.Param("id")); err != nil {
		failTicketErr(c, err, "MessageHandler.Remove")
		return
	}
	response.OK(c, true)
}
