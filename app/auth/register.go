// Package auth implements registration, login and the email
// confirmation flow
package auth

import (
	"errors"
	"net/http"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	if err := validators.UsernameValidator(data.Username); err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	// Email checked before username, callers rely on that order
	taken, err := exists(d.DB, "email = ?", data.Email)
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to check if email is registered", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	if taken {
		httperr.JSON(c, http.StatusConflict, "User with such email already exists")
		return
	}

	taken, err = exists(d.DB, "username = ?", data.Username)
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to check if username is registered", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	if taken {
		httperr.JSON(c, http.StatusConflict, "User with such username already exists")
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user := model.User{
		Username:       data.Username,
		Email:          data.Email,
		HashedPassword: hash,
	}

	if err := d.DB.Create(&user).Error; err != nil {
		// The check above can race with a concurrent insert, the unique
		// constraint has the final word
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			taken, checkErr := exists(d.DB, "email = ?", data.Email)
			if checkErr == nil && taken {
				httperr.JSON(c, http.StatusConflict, "User with such email already exists")
				return
			}

			httperr.JSON(c, http.StatusConflict, "User with such username already exists")
			return
		}

		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	enqueueConfirmation(d, &user, requestID)

	c.JSON(http.StatusCreated, user)
}

func exists(db *gorm.DB, query string, arg any) (bool, error) {
	var found bool

	r := db.Model(model.User{}).
		Select("count(*) > 0").
		Where(query, arg).
		Scan(&found)

	return found, r.Error
}

// enqueueConfirmation hands the confirmation mail to the background
// queue. The caller never waits on delivery, failures are only logged.
func enqueueConfirmation(d *internal.Deps, user *model.User, requestID string) {
	token, err := d.Tokens.IssueConfirmation(user.Email)
	if err != nil {
		zap.L().Error("Failed to issue confirmation token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.JobQueue.Enqueue(&service.MailJob{
		ID:       uuid.NewString(),
		To:       user.Email,
		Username: user.Username,
		Token:    token,
	})
	if err != nil {
		zap.L().Warn("Failed to enqueue confirmation mail", zap.Error(err), zap.String("requestID", requestID))
	}
}
