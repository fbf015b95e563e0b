// Package user exposes the authenticated user's own record
package user

import (
	"net/http"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
)

func Me(c *gin.Context, _ *internal.Deps) {
	user := c.MustGet("user").(model.User)

	c.JSON(http.StatusOK, user)
}
