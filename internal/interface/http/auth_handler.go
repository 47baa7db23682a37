package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/deskhive/helpdesk-api/internal/application"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
	"github.com/deskhive/helpdesk-api/pkg/response"
	"github.com/deskhive/helpdesk-api/pkg/validation"
)

// AuthHandler handles session login/logout with the cookie pair.
type AuthHandler struct {
	Identity *application.IdentityService
	Cookies  *helpers.CookieManager
	Logger   *logrus.Logger
}

func NewAuthHandler(identity *application.IdentityService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Identity: identity, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"Email" binding:"required,email"`
	Password string `json:"Password" binding:"required"`
	Remember bool   `json:"Remember"`
}

// Login POST /login
// Distinct failure kinds map to distinct response codes so the client can
// render precise messages; anything unexpected degrades to a generic
// "login failed".
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, response.CodeValidationFailed, validation.Describe(err), "AuthHandler.Login")
		return
	}

	res, err := h.Identity.Login(c.Request.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail[any](c, http.StatusUnauthorized, response.CodeUserNotFound, "user not found", "AuthHandler.Login")
		case errors.Is(err, application.ErrPasswordInvalid):
			response.Fail[any](c, http.StatusUnauthorized, response.CodePasswordInvalid, "password invalid", "AuthHandler.Login")
		case errors.Is(err, application.ErrUserLocked):
			response.Fail[any](c, http.StatusUnauthorized, response.CodeUserLocked, "user locked", "AuthHandler.Login")
		case errors.Is(err, application.ErrSessionInvalid):
			response.Fail[any](c, http.StatusUnauthorized, response.CodeSessionInvalid, "session could not be established", "AuthHandler.Login")
		case errors.Is(err, application.ErrPermissionDenied):
			response.Fail[any](c, http.StatusUnauthorized, response.CodePermissionDenied, "permission denied", "AuthHandler.Login")
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Warn("login failed")
			}
			response.Fail[any](c, http.StatusBadRequest, response.CodeOtherError, "login failed", "AuthHandler.Login")
		}
		return
	}

	h.Cookies.SetPair(c, res.Pair.AccessToken, res.Pair.AccessTokenExpiry, res.Pair.RefreshToken, res.Pair.RefreshTokenExpiry)
	response.OK(c, res.User)
}

// Logout POST /logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	if uid := c.GetString("userID"); uid != "" {
		h.Identity.Logout(c.Request.Context(), uid)
	}
	h.Cookies.Clear(c)
	response.OK(c, true)
}
