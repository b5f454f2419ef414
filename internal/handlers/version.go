package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/agents-rest/internal/version"
)

type VersionHandler struct{}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

// Get returns build information.
// GET /version
func (h *VersionHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, version.Info())
}
