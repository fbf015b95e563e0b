// Package contact implements the per-user contact directory
package contact

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	errBadSkip  = errors.New("skip must be a non-negative integer")
	errBadLimit = errors.New("limit must be an integer between 10 and 100")
)

type listQuery struct {
	userID    uint
	skip      int
	limit     int
	firstName string
	lastName  string
	email     string
	dateFrom  *time.Time
	dateTo    *time.Time
}

// parsePagination reads skip/limit off the query string. Out-of-range
// limits are rejected rather than clamped, same as the boundary
// validation everywhere else.
func parsePagination(c *gin.Context) (skip, limit int, err error) {
	skip, err = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		return 0, 0, errBadSkip
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 10 || limit > 100 {
		return 0, 0, errBadLimit
	}

	return skip, limit, nil
}

// applyFilters builds the scoped contact listing query. Every
// predicate is ANDed, the owner filter is always present and ordering
// by id keeps pagination stable.
func applyFilters(db *gorm.DB, q *listQuery) *gorm.DB {
	tx := db.Where("user_id = ?", q.userID)

	if q.firstName != "" {
		tx = tx.Where("UPPER(first_name) = UPPER(?)", q.firstName)
	}
	if q.lastName != "" {
		tx = tx.Where("UPPER(last_name) = UPPER(?)", q.lastName)
	}
	if q.email != "" {
		tx = tx.Where("UPPER(email) = UPPER(?)", q.email)
	}
	if q.dateFrom != nil {
		tx = tx.Where("date >= ?", *q.dateFrom)
	}
	if q.dateTo != nil {
		tx = tx.Where("date <= ?", *q.dateTo)
	}

	return tx.Order("id").Offset(q.skip).Limit(q.limit)
}
