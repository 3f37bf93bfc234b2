package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emberdate/emberdate/internal/interface/http"
)

// ProfileModule wires profile, image and account endpoints.
// Public: GET /api/userImage/:imageID
// Protected: GET /api/user, POST /api/user, GET /api/user/:id,
// POST /api/userImage, GET /delete/:userid

type ProfileModule struct {
	Users  *handlers.UserHandler
	Images *handlers.ImageHandler
	Auth   gin.HandlerFunc
}

func NewProfileModule(users *handlers.UserHandler, images *handlers.ImageHandler, auth gin.HandlerFunc) *ProfileModule {
	return &ProfileModule{Users: users, Images: images, Auth: auth}
}

func (m *ProfileModule) Register(root, api *gin.RouterGroup) {
	// Image fetch is public: profile pictures render in <img> tags without
	// an Authorization header.
	api.GET("/userImage/:imageID", m.Images.Get)

	del := root.Group("/")
	del.Use(m.Auth)
	del.GET("/delete/:userid", m.Users.Delete)

	auth := api.Group("/")
	auth.Use(m.Auth)
	{
		auth.GET("/user", m.Users.Me)
		auth.POST("/user", m.Users.Update)
		auth.GET("/user/:id", m.Users.Get)
		auth.POST("/userImage", m.Images.Upload)
	}
}
