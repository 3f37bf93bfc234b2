package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emberdate/emberdate/internal/container"
	handlers "github.com/emberdate/emberdate/internal/interface/http"
	"github.com/emberdate/emberdate/internal/interface/middleware"
)

// AuthModule wires the public credential endpoints.
// Public: POST /login, POST /register

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(root, _ *gin.RouterGroup) {
	// Credential endpoints get tight per-IP limits; private clients bypass
	// them so local development is never throttled.
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	root.POST("/login", loginLimiter, m.Handler.Login)
	root.POST("/register", registerLimiter, m.Handler.Register)
}
