package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deskhive/helpdesk-api/internal/application"
	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/internal/interface/middleware"
	"github.com/deskhive/helpdesk-api/pkg/response"
	"github.com/deskhive/helpdesk-api/pkg/validation"
)

// UserHandler exposes account management and the password-recovery flow.
type UserHandler struct {
	Users    *application.UserService
	Identity *application.IdentityService
	Logger   *logrus.Logger
}

func NewUserHandler(users *application.UserService, identity *application.IdentityService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Identity: identity, Logger: logger}
}

// GetAll GET /users/getall
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.Users.GetAll(c.Request.Context())
	if err != nil {
		response.Fail[any](c, http.StatusInternalServerError, response.CodeOtherError, "could not list users", "UserHandler.GetAll")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetByID GET /users/getbyid/:id
// Answers an empty object when the user does not exist.
func (h *UserHandler) GetByID(c *gin.Context) {
	dto, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail[any](c, http.StatusInternalServerError, response.CodeOtherError, "could not load user", "UserHandler.GetByID")
		return
	}
	c.JSON(http.StatusOK, dto)
}

// GetTechnicians GET /users/gettechnicians
func (h *UserHandler) GetTechnicians(c *gin.Context) {
	users, err := h.Users.GetTechnicians(c.Request.Context())
	if err != nil {
		response.Fail[any](c, http.StatusInternalServerError, response.CodeOtherError, "could not list technicians", "UserHandler.GetTechnicians")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetRole GET /users/getrole/:userId
func (h *UserHandler) GetRole(c *gin.Context) {
	dto, err := h.Users.GetRoleByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Fail[any](c, http.StatusInternalServerError, response.CodeOtherError, "could not resolve role", "UserHandler.GetRole")
		return
	}
	c.JSON(http.StatusOK, dto)
}

// CreateManager POST /users/create/manager
func (h *UserHandler) CreateManager(c *gin.Context) {
	h.create(c, entity.RoleSupportManager)
}

// CreateTechnician POST /users/create/technician
func (h *UserHandler) CreateTechnician(c *gin.Context) {
	h.create(c, entity.RoleSupportTechnician)
}

func (h *UserHandler) create(c *gin.Context, role string) {
	var dto application.CreateUserDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, validation.Describe(err), "UserHandler.Create")
		return
	}
	created, validationErrs, err := h.Users.Create(c.Request.Context(), dto, role)
	if err != nil {
		response.Fail[any](c, http.StatusInternalServerError, response.CodeOtherError, "could not create user", "UserHandler.Create")
		return
	}
	if len(validationErrs) > 0 {
		code := response.CodeValidationFailed
		if len(validationErrs) == 1 {
			switch {
			case strings.HasPrefix(validationErrs[0], "UserName"):
				code = response.CodeDuplicateUserName
			case strings.HasPrefix(validationErrs[0], "Email"):
				code = response.CodeDuplicateEmail
			}
		}
		response.Fail[any](c, http.StatusBadRequest, code, strings.Join(validationErrs, "; "), "UserHandler.Create")
		return
	}
	response.OK(c, created)
}

// Update POST /users/update/:userId
func (h *UserHandler) Update(c *gin.Context) {
	var dto application.CreateUserDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, validation.Describe(err), "UserHandler.Update")
		return
	}
	updated, err := h.Users.Update(c.Request.Context(), c.Param("userId"), dto)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Fail[any](c, http.StatusBadRequest, response.CodeUserNotFound, "user not found", "UserHandler.Update")
			return
		}
		response.Fail[any](c, http.StatusInternalServerError, response.CodeOtherError, "could not update user", "UserHandler.Update")
		return
	}
	response.OK(c, updated)
}

// ChangeLanguage PUT /users/changelanguage/:userId
func (h *UserHandler) ChangeLanguage(c *gin.Context) {
	var dto application.ChangeLanguageDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, validation.Describe(err), "UserHandler.ChangeLanguage")
		return
	}
	ok, err := h.Users.ChangeLanguage(c.Request.Context(), dto, c.Param("userId"))
	if err != nil {
		response.Fail[any](c, http.StatusInternalServerError, response.CodeOtherError, "could not change language", "UserHandler.ChangeLanguage")
		return
	}
	response.OK(c, ok)
}

// Remove DELETE /users/remove/:id
// Always answers 200; the envelope carries the outcome, including the
// not-found error naming the requested id.
func (h *UserHandler) Remove(c *gin.Context) {
	c.JSON(http.StatusOK, h.Users.Remove(c.Request.Context(), c.Param("id")))
}

// SendMail GET /users/sendemail/:username/:domain/:tld
// Answers 200 true when a recovery mail was enqueued, 400 false otherwise.
func (h *UserHandler) SendMail(c *gin.Context) {
	ok := h.Users.SendMail(
		c.Request.Context(),
		c.Param("username"),
		c.Param("domain"),
		c.Param("tld"),
		middleware.IPFromCtx(c),
	)
	if !ok {
		c.JSON(http.StatusBadRequest, false)
		return
	}
	c.JSON(http.StatusOK, true)
}

// ResetPassword POST /users/resetpassword (form body)
// Verifies the purpose token and rotates the password. 200 true / 400 false.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var dto application.ResetPasswordDto
	if err := c.ShouldBind(&dto); err != nil {
		c.JSON(http.StatusBadRequest, false)
		return
	}
	ctx := c.Request.Context()
	u, err := h.Users.ResetPassword(ctx, dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, false)
		return
	}
	valid, err := h.Identity.VerifyUserToken(ctx, u, application.PurposePasswordReset, dto.Token)
	if err != nil || !valid {
		c.JSON(http.StatusBadRequest, false)
		return
	}
	ok, err := h.Identity.UpdateUserPassword(ctx, u, dto.NewPassword)
	if err != nil || !ok {
		c.JSON(http.StatusBadRequest, false)
		return
	}
	c.JSON(http.StatusOK, true)
}
