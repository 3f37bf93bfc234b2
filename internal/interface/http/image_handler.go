package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emberdate/emberdate/internal/application"
	"github.com/emberdate/emberdate/internal/domain/entity"
	"github.com/emberdate/emberdate/internal/interface/middleware"
)

type ImageHandler struct {
	Svc      *application.UserService
	Logger   *logrus.Logger
	MaxBytes int64
}

func NewImageHandler(svc *application.UserService, logger *logrus.Logger, maxBytes int64) *ImageHandler {
	return &ImageHandler{Svc: svc, Logger: logger, MaxBytes: maxBytes}
}

// Upload POST /api/userImage reads the multipart field "image" and replaces
// the actor's current picture in place so the image id stays stable.
func (h *ImageHandler) Upload(c *gin.Context) {
	u := middleware.CurrentUser(c)
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "No file uploaded"})
		return
	}
	if header.Size > h.MaxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Image too large"})
		return
	}
	f, err := header.Open()
	if err != nil {
		fail(c, h.Logger, err, "Error, image was not saved")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.MaxBytes+1))
	if err != nil {
		fail(c, h.Logger, err, "Error, image was not saved")
		return
	}
	if int64(len(data)) > h.MaxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Image too large"})
		return
	}
	mimetype := http.DetectContentType(data)
	if !strings.HasPrefix(mimetype, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "File is not an image"})
		return
	}
	id, err := h.Svc.UploadImage(c.Request.Context(), u.ID, &entity.Image{
		Name:     header.Filename,
		Mimetype: mimetype,
		Data:     data,
	})
	if err != nil {
		fail(c, h.Logger, err, "Error, image was not saved")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User image updated successfully", "image": id})
}

// Get GET /api/userImage/:imageID serves raw bytes with the stored mimetype.
// Served uncached because an upload replaces the bytes behind the same id.
func (h *ImageHandler) Get(c *gin.Context) {
	img, err := h.Svc.GetImage(c.Request.Context(), c.Param("imageID"))
	if err != nil {
		fail(c, h.Logger, err, "Error in fetching image")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, img.Mimetype, img.Data)
}
