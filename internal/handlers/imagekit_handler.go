package handlers

import (
	"net/http"

	"github.com/tejas-exe/droply/internal/imagekit"
	"github.com/tejas-exe/droply/internal/middleware"
	"github.com/tejas-exe/droply/pkg/responses"

	"github.com/gin-gonic/gin"
)

type ImageKitHandler struct {
	client *imagekit.Client
}

func NewImageKitHandler(client *imagekit.Client) *ImageKitHandler {
	return &ImageKitHandler{client: client}
}

// AuthParams returns signed upload parameters so the browser can upload
// directly to ImageKit. The caller must be authenticated but the parameters
// themselves carry no user scoping.
func (h *ImageKitHandler) AuthParams(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); !ok {
		responses.Error(c, http.StatusUnauthorized, "Unauthorized: User not authenticated.")
		return
	}

	c.JSON(http.StatusOK, h.client.AuthenticationParameters())
}
