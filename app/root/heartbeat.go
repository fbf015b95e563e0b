// Package root holds the small operational endpoints
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat is used to check if the server is alive
func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate returns 200 when the bearer token in front of it checked out
func Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
