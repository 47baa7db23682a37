package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deskhive/helpdesk-api/internal/application"
	"github.com/deskhive/helpdesk-api/pkg/response"
)

const maxAttachmentSize = 20 << 20 // 20 MiB

// AttachmentHandler uploads and lists ticket attachments.
type AttachmentHandler struct {
	Attachments *application.AttachmentService
	Logger      *logrus.Logger
}

func NewAttachmentHandler(attachments *application.AttachmentService, logger *logrus.Logger) *AttachmentHandler {
	return &AttachmentHandler{Attachments: attachments, Logger: logger}
}

// GetByTicket GET /attachments/getbyticket/:ticketId
func (h *AttachmentHandler) GetByTicket(c *gin.Context) {
	atts, err := h.Attachments.GetByTicket(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		failTicketErr(c, err, "AttachmentHandler.GetByTicket")
		return
	}
	c.JSON(http.StatusOK, atts)
}

// GetByID GET /attachments/getbyid/:id
func (h *AttachmentHandler) GetByID(c *gin.Context) {
	dto, err := h.Attachments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failTicketErr(c, err, "AttachmentHandler.GetByID")
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Upload POST /attachments/upload/:ticketId (multipart, field "file",
// optional "messageId")
func (h *AttachmentHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, "file is required", "AttachmentHandler.Upload")
		return
	}
	if fh.Size > maxAttachmentSize {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, "file too large", "AttachmentHandler.Upload")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Fail[any](c, http.StatusInternalServerError, response.CodeOtherError, "could not read upload", "AttachmentHandler.Upload")
		return
	}
	defer func() { _ = f.Close() }()

	dto, err := h.Attachments.Upload(
		c.Request.Context(),
		c.Param("ticketId"),
		c.PostForm("messageId"),
		c.GetString("userID"),
		fh.Filename,
		fh.Header.Get("Content-Type"),
		fh.Size,
		f,
	)
	if err != nil {
		failTicketErr(c, err, "AttachmentHandler.Upload")
		return
	}
	response.OK(c, dto)
}

// Remove DELETE /attachments/remove/:id
func (h *AttachmentHandler) Remove(c *gin.Context) {
	if err := h.Attachments.Remove(c.Request.Context(), c.Param("id")); err != nil {
		failTicketErr(c, err, "AttachmentHandler.Remove")
		return
	}
	response.OK(c, true)
}
