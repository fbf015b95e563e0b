package contact

import (
	"net/http"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/httperr"
	"bitwise74/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	skip, limit, err := parsePagination(c)
	if err != nil {
		httperr.JSON(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	q := &listQuery{
		userID:    userID,
		skip:      skip,
		limit:     limit,
		firstName: c.Query("first_name"),
		lastName:  c.Query("last_name"),
		email:     c.Query("email"),
	}

	contacts := []model.Contact{}

	err = applyFilters(d.DB, q).Find(&contacts).Error
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, "Internal server error")
		zap.L().Error("Failed to list contacts", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contacts)
}
