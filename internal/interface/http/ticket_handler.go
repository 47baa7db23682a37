package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deskhive/helpdesk-api/internal/application"
	"github.com/deskhive/helpdesk-api/pkg/response"
	"github.com/deskhive/helpdesk-api/pkg/validation"
)

// TicketHandler exposes ticket CRUD and search.
type TicketHandler struct {
	Tickets *application.TicketService
	Logger  *logrus.Logger
}

func NewTicketHandler(tickets *application.TicketService, logger *logrus.Logger) *TicketHandler {
	return &TicketHandler{Tickets: tickets, Logger: logger}
}

func failTicketErr(c *gin.Context, err error, location string) {
	switch {
	case errors.Is(err, application.ErrTicketNotFound):
		response.Fail[any](c, http.StatusBadRequest, response.CodeTicketNotFound, "ticket not found", location)
	case errors.Is(err, application.ErrUserNotFound):
		response.Fail[any](c, http.StatusBadRequest, response.CodeUserNotFound, "user not found", location)
	case errors.Is(err, application.ErrMessageNotFound):
		response.Fail[any](c, http.StatusBadRequest, response.CodeMessageNotFound, "message not found", location)
	case errors.Is(err, application.ErrAttachmentMissing):
		response.Fail[any](c, http.StatusBadRequest, response.CodeAttachmentNotFound, "attachment not found", location)
	default:
		response.Fail[any](c, http.StatusInternalServerError, response.CodeOtherError, "operation failed", location)
	}
}

// GetAll GET /tickets/getall
func (h *TicketHandler) GetAll(c *gin.Context) {
	tickets, err := h.Tickets.GetAll(c.Request.Context())
	if err != nil {
		failTicketErr(c, err, "TicketHandler.GetAll")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetByID GET /tickets/getbyid/:id
func (h *TicketHandler) GetByID(c *gin.Context) {
	dto, err := h.Tickets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failTicketErr(c, err, "TicketHandler.GetByID")
		return
	}
	c.JSON(http.StatusOK, dto)
}

// GetByRequester GET /tickets/getbyrequester/:userId
func (h *TicketHandler) GetByRequester(c *gin.Context) {
	tickets, err := h.Tickets.GetByRequester(c.Request.Context(), c.Param("userId"))
	if err != nil {
		failTicketErr(c, err, "TicketHandler.GetByRequester")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetByAssignee GET /tickets/getbyassignee/:userId
func (h *TicketHandler) GetByAssignee(c *gin.Context) {
	tickets, err := h.Tickets.GetByAssignee(c.Request.Context(), c.Param("userId"))
	if err != nil {
		failTicketErr(c, err, "TicketHandler.GetByAssignee")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// Create POST /tickets/create
func (h *TicketHandler) Create(c *gin.Context) {
	var dto application.CreateTicketDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, validation.Describe(err), "TicketHandler.Create")
		return
	}
	created, err := h.Tickets.Create(c.Request.Context(), dto)
	if err != nil {
		failTicketErr(c, err, "TicketHandler.Create")
		return
	}
	response.OK(c, created)
}

// Update POST /tickets/update/:id
func (h *TicketHandler) Update(c *gin.Context) {
	var dto application.UpdateTicketDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, validation.Describe(err), "TicketHandler.Update")
		return
	}
	updated, err := h.Tickets.Update(c.Request.Context(), c.Param("id"), dto)
	if err != nil {
		failTicketErr(c, err, "TicketHandler.Update")
		return
	}
	response.OK(c, updated)
}

// Remove DELETE /tickets/remove/:id
func (h *TicketHandler) Remove(c *gin.Context) {
	if err := h.Tickets.Remove(c.Request.Context(), c.Param("id")); err != nil {
		failTicketErr(c, err, "TicketHandler.Remove")
		return
	}
	response.OK(c, true)
}

// Search GET /tickets/search?q=...&size=...
func (h *TicketHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, "q is required", "TicketHandler.Search")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Tickets.Search(c.Request.Context(), q, size)
	if err != nil {
		failTicketErr(c, err, "TicketHandler.Search")
		return
	}
	c.JSON(http.StatusOK, hits)
}
