package contact

import (
	"net/http"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var data validators.ContactPayload
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	if err := validators.ContactValidator(&data); err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	date, err := model.ParseDate(data.Date)
	if err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, validators.ErrDateFormat.Error())
		return
	}

	contact := model.Contact{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Phone:     data.Phone,
		Date:      date,
		Notes:     data.Notes,
		UserID:    userID,
	}

	if err := d.DB.Create(&contact).Error; err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to create contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, contact)
}
