package handlers

import (
	"net/http"

	"github.com/dinepoll/server/pkg/version"
	"github.com/gin-gonic/gin"
)

// Version handles GET /version, unauthenticated.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
