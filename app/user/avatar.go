package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const uploadTimeout = 30 * time.Second

// Avatar uploads the multipart "file" field to the image host and
// persists the returned URL on the caller's user row. The file's real
// content type is sniffed, only images go through.
func Avatar(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(model.User)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, "No file provided")
		return
	}

	file, contentType, err := validators.AvatarValidator(fileHeader)
	if err != nil {
		if errors.Is(err, validators.ErrFileTypeUnsupported) {
			httperr.JSON(c, http.StatusUnprocessableEntity, "Unsupported file type")
			return
		}

		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to validate uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	url, err := d.Avatars.UploadAvatar(ctx, file, fileHeader.Size, contentType, user.Username)
	if err != nil {
		if errors.Is(err, service.ErrUploadFailed) {
			httperr.JSON(c, http.StatusBadGateway, "Avatar upload failed")
			zap.L().Error("Avatar host rejected upload", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to upload avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("avatar", url).
		Error
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to persist avatar URL", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user.Avatar = &url
	c.JSON(http.StatusOK, user)
}
