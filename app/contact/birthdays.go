package contact

import (
	"net/http"
	"time"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Birthdays lists the caller's contacts whose date falls within the
// next 7 days, inclusive on both ends.
func Birthdays(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	skip, limit, err := parsePagination(c)
	if err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	today := model.NewDate(time.Now()).Time
	until := today.AddDate(0, 0, 7)

	q := &listQuery{
		userID:   userID,
		skip:     skip,
		limit:    limit,
		dateFrom: &today,
		dateTo:   &until,
	}

	contacts := []model.Contact{}

	err = applyFilters(d.DB, q).Find(&contacts).Error
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to list upcoming birthdays", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contacts)
}
