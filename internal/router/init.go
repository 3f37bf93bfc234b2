package router

import (
	"github.com/emberdate/emberdate/internal/application"
	"github.com/emberdate/emberdate/internal/container"
	pginfra "github.com/emberdate/emberdate/internal/infrastructure/postgres"
	handlers "github.com/emberdate/emberdate/internal/interface/http"
	"github.com/emberdate/emberdate/internal/interface/middleware"
	"github.com/emberdate/emberdate/internal/router/modules"
)

// InitModules builds every repository, service and handler from the container
// singletons and registers the feature modules. Called once at startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(pool)
	matches := pginfra.NewMatchRepository(pool)
	convos := pginfra.NewConversationRepository(pool)
	messages := pginfra.NewMessageRepository(pool)
	images := pginfra.NewImageRepository(pool)

	userSvc := application.NewUserService(users, images, container.GetJWT(), logger)
	matchSvc := application.NewMatchService(users, matches, logger)
	chatSvc := application.NewConversationService(users, convos, messages, logger)

	auth := middleware.Auth(users, container.GetJWT())

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, logger)))
	r.Add(modules.NewSwipeModule(handlers.NewMatchHandler(matchSvc, logger), auth))
	r.Add(modules.NewChatModule(handlers.NewChatHandler(chatSvc, logger), auth))
	r.Add(modules.NewProfileModule(
		handlers.NewUserHandler(userSvc, logger),
		handlers.NewImageHandler(userSvc, logger, cfg.MaxImageBytes),
		auth,
	))
}
