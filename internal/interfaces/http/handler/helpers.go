package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/printdesk/backend/internal/application/report"
)

// DateLayout is the query string date format
const DateLayout = "2006-01-02"

// queryUUID parses an optional UUID query parameter
func queryUUID(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter in local time
func queryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// bindPeriod reads from/to. On failure the 400 response is already written.
func (h *BaseHandler) bindPeriod(c *gin.Context) (reportapp.PeriodFilter, bool) {
	from, err := queryDate(c, "from")
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_DATE", "from must be a date in YYYY-MM-DD format")
		return reportapp.PeriodFilter{}, false
	}
	to, err := queryDate(c, "to")
	if err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_DATE", "to must be a date in YYYY-MM-DD format")
		return reportapp.PeriodFilter{}, false
	}
	if from != nil && to != nil && from.After(*to) {
		h.Error(c, http.StatusBadRequest, "INVALID_PERIOD", "from must not be after to")
		return reportapp.PeriodFilter{}, false
	}
	return reportapp.PeriodFilter{From: from, To: to}, true
}
