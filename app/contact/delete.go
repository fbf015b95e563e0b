package contact

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Delete removes an owned contact and returns its last known state.
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, "Invalid contact id")
		return
	}

	var persisted model.Contact

	err = d.DB.Where("id = ? AND user_id = ?", id, userID).First(&persisted).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.JSON(c, http.StatusNotFound, fmt.Sprintf("No contact found by id %d", id))
			return
		}

		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to fetch contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Contact{}).Error
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to delete contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, persisted)
}
