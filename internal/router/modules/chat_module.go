package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emberdate/emberdate/internal/container"
	handlers "github.com/emberdate/emberdate/internal/interface/http"
	"github.com/emberdate/emberdate/internal/interface/middleware"
)

// ChatModule wires the conversation endpoints.
// Protected: GET /api/conversations, POST /api/newMessage, GET /api/messages/:chatid

type ChatModule struct {
	Handler *handlers.ChatHandler
	Auth    gin.HandlerFunc
}

func NewChatModule(h *handlers.ChatHandler, auth gin.HandlerFunc) *ChatModule {
	return &ChatModule{Handler: h, Auth: auth}
}

func (m *ChatModule) Register(_, api *gin.RouterGroup) {
	messageLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil)

	auth := api.Group("/")
	auth.Use(m.Auth)
	{
		auth.GET("/conversations", m.Handler.Conversations)
		auth.POST("/newMessage", messageLimiter, m.Handler.NewMessage)
		auth.GET("/messages/:chatid", m.Handler.Messages)
	}
}
