package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deskhive/helpdesk-api/internal/container"
	handlers "github.com/deskhive/helpdesk-api/internal/interface/http"
	"github.com/deskhive/helpdesk-api/internal/interface/middleware"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
)

// AuthModule wires login/logout.
// Public: POST /api/login
// Protected: POST /api/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil) // 10 req/min per IP

	rg.POST("/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
