package router

import (
	"github.com/deskhive/helpdesk-api/internal/application"
	"github.com/deskhive/helpdesk-api/internal/container"
	handlers "github.com/deskhive/helpdesk-api/internal/interface/http"
	"github.com/deskhive/helpdesk-api/internal/router/modules"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
)

// InitModules builds every application service and handler from the
// container singletons and registers the feature modules. Call once during
// startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	uowf := container.GetUoWFactory()
	jwt := container.GetJWT()

	var tokens application.TokenStore
	if rdb := container.GetRedis(); rdb != nil {
		tokens = application.NewRedisTokenStore(rdb)
	} else {
		tokens = application.NewMemoryTokenStore()
	}

	identity := application.NewIdentityService(uowf, tokens, jwt, container.GetRedis(), logger, cfg.ResetTokenTTL, cfg.RememberTTL)

	var pub application.EmailPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	users := application.NewUserService(uowf, identity, pub, logger, cfg)
	tickets := application.NewTicketService(uowf, container.GetES(), cfg.ESTicketsIndex, logger)
	messages := application.NewMessageService(uowf, logger)
	var blobs application.BlobStore
	if g := container.GetGCS(); g != nil && cfg.GCSBucket != "" {
		blobs = helpers.NewGCSBucket(g, cfg.GCSBucket)
	}
	attachments := application.NewAttachmentService(uowf, blobs, logger)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(identity, cookies, logger), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(users, identity, logger), jwt))
	r.Add(modules.NewTicketModule(
		handlers.NewTicketHandler(tickets, logger),
		handlers.NewMessageHandler(messages, logger),
		handlers.NewAttachmentHandler(attachments, logger),
		jwt,
	))
}
