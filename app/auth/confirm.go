package auth

import (
	"errors"
	"fmt"
	"net/http"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Confirm handles the link-click flow: the token from the mail resolves
// to an email address whose user gets flipped to confirmed. Confirming
// twice is a no-op.
func Confirm(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	email, err := d.Tokens.Subject(c.Param("token"), security.ScopeConfirmation)
	if err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, "Incorrect verification token")
		return
	}

	var user model.User

	err = d.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.JSON(c, http.StatusBadRequest, "Verification error")
			return
		}

		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to look up user for confirmation", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user.Confirmed {
		c.JSON(http.StatusCreated, gin.H{
			"message": fmt.Sprintf("The email %s is already confirmed", email),
		})
		return
	}

	err = d.DB.Model(&model.User{}).
		Where("email = ?", email).
		Update("confirmed", true).
		Error
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to confirm email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("The email %s has been confirmed", email),
	})
}
