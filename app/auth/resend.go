package auth

import (
	"errors"
	"fmt"
	"net/http"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type resendBody struct {
	Email string `json:"email"`
}

// Resend mails a fresh confirmation link for accounts that lost the
// first one. Already confirmed accounts get the idempotent reply.
func Resend(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resendBody
	if err := c.ShouldBindJSON(&data); err != nil || data.Email == "" {
		httperr.JSON(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	var user model.User

	err := d.DB.Where("email = ?", data.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.JSON(c, http.StatusBadRequest, "Unknown email")
			return
		}

		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to look up user for resend", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user.Confirmed {
		c.JSON(http.StatusCreated, gin.H{
			"message": fmt.Sprintf("The email %s is already confirmed", data.Email),
		})
		return
	}

	enqueueConfirmation(d, &user, requestID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Please check your email for confirmation",
	})
}
