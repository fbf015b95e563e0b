package auth

import (
	"errors"
	"net/http"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Login checks the submitted form credentials and hands out a session
// token. The form encoding matches the usual OAuth2 password flow.
func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	username := c.PostForm("username")
	password := c.PostForm("password")

	if username == "" || password == "" {
		httperr.JSON(c, http.StatusUnprocessableEntity, "Username and password fields can't be empty")
		return
	}

	var user model.User

	err := d.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.JSON(c, http.StatusUnauthorized, "Incorrect user or password")
			return
		}

		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ok, err := d.Argon.VerifyPasswd(password, user.HashedPassword)
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		httperr.JSON(c, http.StatusUnauthorized, "Incorrect user or password")
		return
	}

	if !user.Confirmed {
		httperr.JSON(c, http.StatusUnauthorized, "Email is not confirmed")
		return
	}

	token, err := d.Tokens.IssueSession(user.Username)
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to issue session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}
