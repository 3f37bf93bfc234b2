package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emberdate/emberdate/internal/container"
	handlers "github.com/emberdate/emberdate/internal/interface/http"
	"github.com/emberdate/emberdate/internal/interface/middleware"
)

// SwipeModule wires the discovery and like endpoints.
// Protected: GET /api/unmatched, POST /like

type SwipeModule struct {
	Handler *handlers.MatchHandler
	Auth    gin.HandlerFunc
}

func NewSwipeModule(h *handlers.MatchHandler, auth gin.HandlerFunc) *SwipeModule {
	return &SwipeModule{Handler: h, Auth: auth}
}

func (m *SwipeModule) Register(root, api *gin.RouterGroup) {
	likeLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil) // swipes are bursty

	like := root.Group("/")
	like.Use(m.Auth)
	like.POST("/like", likeLimiter, m.Handler.Like)

	auth := api.Group("/")
	auth.Use(m.Auth)
	auth.GET("/unmatched", m.Handler.Unmatched)
}
