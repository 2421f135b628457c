package report

import (
	"time"

	"github.com/printdesk/backend/internal/domain/report"
)

// PeriodFilter is an optional date range bound from the query string.
// Both dates are inclusive days.
type PeriodFilter struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// IsSet reports whether either bound was given
func (f PeriodFilter) IsSet() bool {
	return (f.From != nil && !f.From.IsZero()) || (f.To != nil && !f.To.IsZero())
}

// Resolve fills missing bounds with this month's range and extends To to the end of its day
func (f PeriodFilter) Resolve(now time.Time) report.Period {
	var to *time.Time
	if f.To != nil && !f.To.IsZero() {
		end := endOfDay(*f.To)
		to = &end
	}
	return report.ResolvePeriod(f.From, to, now)
}

// Optional returns nil when no bound was given, otherwise the resolved period
func (f PeriodFilter) Optional(now time.Time) *report.Period {
	if !f.IsSet() {
		return nil
	}
	p := f.Resolve(now)
	if f.From == nil || f.From.IsZero() {
		p.From = time.Time{}
	}
	return &p
}

// LimitFilter binds the limit query parameter
type LimitFilter struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// TopCustomersFilter binds the top customers query
type TopCustomersFilter struct {
	PeriodFilter
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// TrendFilter binds the revenue trend query
type TrendFilter struct {
	Months int `form:"months" binding:"omitempty,min=1,max=36"`
}

// InactiveCustomersFilter binds the inactive customers query
type InactiveCustomersFilter struct {
	Days int `form:"days" binding:"omitempty,min=1,max=3650"`
}

// LowDemandFilter binds the low-demand products query
type LowDemandFilter struct {
	Days      int    `form:"days" binding:"omitempty,min=1,max=3650"`
	Threshold *int64 `form:"threshold" binding:"omitempty,min=0"`
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
