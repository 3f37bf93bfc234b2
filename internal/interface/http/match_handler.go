package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emberdate/emberdate/internal/application"
	"github.com/emberdate/emberdate/internal/interface/middleware"
	"github.com/emberdate/emberdate/pkg/validation"
)

type MatchHandler struct {
	Svc    *application.MatchService
	Logger *logrus.Logger
}

func NewMatchHandler(svc *application.MatchService, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{Svc: svc, Logger: logger}
}

type likeRequest struct {
	Like string `json:"like" binding:"required"`
}

// Unmatched GET /api/unmatched returns the candidate list fetched once per
// swipe session.
func (h *MatchHandler) Unmatched(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	candidates, err := h.Svc.Unmatched(c.Request.Context(), actor)
	if err != nil {
		fail(c, h.Logger, err, "Error in fetching users")
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// Like POST /like answers 200 with a like acknowledgment, or 201 when the
// like completed a match.
func (h *MatchHandler) Like(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validation.ToDetails(err)})
		return
	}
	res, err := h.Svc.SubmitLike(c.Request.Context(), actor, req.Like)
	if err != nil {
		fail(c, h.Logger, err, "Error, like was not registered")
		return
	}
	if !res.Matched {
		c.JSON(http.StatusOK, gin.H{"like": res.LikedUsername})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"match": res.Match, "convo": res.Convo, "user": res.User})
}
