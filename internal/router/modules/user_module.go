package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deskhive/helpdesk-api/internal/container"
	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	handlers "github.com/deskhive/helpdesk-api/internal/interface/http"
	"github.com/deskhive/helpdesk-api/internal/interface/middleware"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
)

// UserModule wires the user management and password-recovery routes.
// Public: GET /api/users/sendemail/..., POST /api/users/resetpassword
// Everything else requires an authenticated session.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Recovery endpoints stay public but are tightly limited per IP+path.
	recoveryLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	users := rg.Group("/users")
	users.GET("/sendemail/:username/:domain/:tld", recoveryLimiter, m.Handler.SendMail)
	users.POST("/resetpassword", recoveryLimiter, m.Handler.ResetPassword)

	auth := users.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/getall", m.Handler.GetAll)
		auth.GET("/getbyid/:id", m.Handler.GetByID)
		auth.GET("/gettechnicians", m.Handler.GetTechnicians)
		auth.GET("/getrole/:userId", m.Handler.GetRole)
		auth.POST("/update/:userId", m.Handler.Update)
		auth.PUT("/changelanguage/:userId", m.Handler.ChangeLanguage)

		admin := auth.Group("/")
		admin.Use(middleware.RequireRoles(entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleSupportManager))
		{
			admin.POST("/create/manager", m.Handler.CreateManager)
			admin.POST("/create/technician", m.Handler.CreateTechnician)
			admin.DELETE("/remove/:id", m.Handler.Remove)
		}
	}
}
