package contact

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type updateBody struct {
	ID uint `json:"id"`
	validators.ContactPayload
}

// Update overwrites all mutable fields of an owned contact. The path
// id and the body id have to agree, and id/owner are never touched.
func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, "Invalid contact id")
		return
	}

	var data updateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	if uint(id) != data.ID {
		httperr.JSON(c, http.StatusBadRequest,
			fmt.Sprintf("Id in request mismatch. Request: '%d', body: '%d'", id, data.ID))
		return
	}

	if err := validators.ContactValidator(&data.ContactPayload); err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	date, err := model.ParseDate(data.Date)
	if err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, validators.ErrDateFormat.Error())
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

	persisted.FirstName = data.FirstName
	persisted.LastName = data.LastName
	persisted.Email = data.Email
	persisted.Phone = data.Phone
	persisted.Date = date
	persisted.Notes = data.Notes

	if err := d.DB.Save(&persisted).Error; err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to update contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, persisted)
}
