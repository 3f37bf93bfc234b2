package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that can register its routes. Legacy
// client paths live at the root (login, register, like, delete, image fetch)
// while the rest sit under /api, so modules get both groups.
type Module interface {
	Register(root, api *gin.RouterGroup)
}
