package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emberdate/emberdate/internal/application"
	"github.com/emberdate/emberdate/internal/interface/middleware"
	"github.com/emberdate/emberdate/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Username string `json:"username" binding:"required"`
	Age      int    `json:"age" binding:"omitempty,gte=18,lte=120"`
	Bio      string `json:"bio" binding:"omitempty,max=500"`
}

// Me GET /api/user returns the actor's own editable profile fields.
func (h *UserHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":           u.ID,
		"email":        u.Email,
		"username":     u.Username,
		"age":          u.Age,
		"bio":          u.Bio,
		"image":        u.ImageID,
		"registerDate": u.RegisteredAt,
	})
}

// Get GET /api/user/:id returns another user's profile, privacy-scoped: no
// email, no like or match lists.
func (h *UserHandler) Get(c *gin.Context) {
	pub, err := h.Svc.ResolveUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err, "Error in fetching user")
		return
	}
	c.JSON(http.StatusOK, pub)
}

// Update POST /api/user
func (h *UserHandler) Update(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validation.ToDetails(err)})
		return
	}
	err := h.Svc.UpdateProfile(c.Request.Context(), u.ID, application.UpdateProfileInput{
		Username: req.Username,
		Age:      req.Age,
		Bio:      req.Bio,
	})
	if err != nil {
		fail(c, h.Logger, err, "Error, user was not updated")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "profile updated"})
}

// Delete GET /delete/:userid handles self-deletion with full cascade.
func (h *UserHandler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.Svc.Delete(c.Request.Context(), u, c.Param("userid")); err != nil {
		fail(c, h.Logger, err, "Error, user was not deleted")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User and references to user deleted."})
}
