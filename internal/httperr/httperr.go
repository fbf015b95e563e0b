// Package httperr defines the error response shape shared by every
// endpoint: {"errors":[{"message":"..."}]}
package httperr

import "github.com/gin-gonic/gin"

type Item struct {
	Message string `json:"message"`
}

type Response struct {
	Errors []Item `json:"errors"`
}

func New(messages ...string) Response {
	items := make([]Item, 0, len(messages))
	for _, m := range messages {
		items = append(items, Item{Message: m})
	}
	return Response{Errors: items}
}

// JSON writes an error response without aborting the handler chain.
func JSON(c *gin.Context, status int, messages ...string) {
	c.JSON(status, New(messages...))
}

// Abort writes an error response and stops any remaining handlers.
// Used from middleware.
func Abort(c *gin.Context, status int, messages ...string) {
	c.AbortWithStatusJSON(status, New(messages...))
}
