package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewAuthMiddleware validates the Authorization bearer token and loads
// the matching user. Handlers behind it can rely on "user" and
// "userID" being set on the context.
func NewAuthMiddleware(d *gorm.DB, tokens *security.TokenMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if header == "" {
			httperr.Abort(c, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "Authorization header is not a bearer token")
			return
		}

		username, err := tokens.Subject(tokenStr, security.ScopeSession)
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				httperr.Abort(c, http.StatusUnauthorized, "Token is expired")
				return
			}

			httperr.Abort(c, http.StatusUnauthorized, "Unable to verify credentials")
			return
		}

		var user model.User

		err = d.Where("username = ?", username).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(c, http.StatusUnauthorized, "Unable to verify credentials")
				return
			}

			httperr.Abort(c, http.StatusInternalServerError, "Internal server error")
			zap.L().Error("Failed to load user for token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}
