package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emberdate/emberdate/internal/application"
	"github.com/emberdate/emberdate/internal/interface/middleware"
	"github.com/emberdate/emberdate/pkg/validation"
)

type ChatHandler struct {
	Svc    *application.ConversationService
	Logger *logrus.Logger
}

func NewChatHandler(svc *application.ConversationService, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: logger}
}

type newMessageRequest struct {
	ChatID   string `json:"chatID" binding:"required"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Created  int64  `json:"created" binding:"required"`
	Read     bool   `json:"read"`
}

// Conversations GET /api/conversations returns the actor's chat list plus
// their match id list; the client resolves ids to profiles one by one.
func (h *ChatHandler) Conversations(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	list, err := h.Svc.ListConversations(c.Request.Context(), actor)
	if err != nil {
		fail(c, h.Logger, err, "Error when trying to fetch conversation IDs.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": list.Chats, "matches": list.Matches})
}

// NewMessage POST /api/newMessage. The sender field on the wire is ignored:
// the authenticated actor is always the sender.
func (h *ChatHandler) NewMessage(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var req newMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validation.ToDetails(err)})
		return
	}
	err := h.Svc.SendMessage(c.Request.Context(), actor, application.SendMessageInput{
		ConversationID: req.ChatID,
		Receiver:       req.Receiver,
		Body:           req.Message,
		Created:        req.Created,
	})
	if err != nil {
		fail(c, h.Logger, err, "Error when trying to save message.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Messages GET /api/messages/:chatid
func (h *ChatHandler) Messages(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	msgs, err := h.Svc.ListMessages(c.Request.Context(), actor, c.Param("chatid"))
	if err != nil {
		fail(c, h.Logger, err, "Error when trying to fetch messages.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
