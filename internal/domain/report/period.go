package report

import "time"

// Period is a closed time range used to filter report queries
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// MonthStart returns midnight of the first day of t's month, in t's location
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ThisMonth is the period from the first day of now's month to now
func ThisMonth(now time.Time) Period {
	return Period{From: MonthStart(now), To: now}
}

// ResolvePeriod fills missing bounds with this month's range
func ResolvePeriod(from, to *time.Time, now time.Time) Period {
	p := ThisMonth(now)
	if from != nil && !from.IsZero() {
		p.From = *from
	}
	if to != nil && !to.IsZero() {
		p.To = *to
	}
	return p
}

// MonthKey formats t as YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// LastMonths returns the YYYY-MM keys of the n months ending with now's month, oldest first
func LastMonths(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	start := MonthStart(now).AddDate(0, -(n - 1), 0)
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, MonthKey(start.AddDate(0, i, 0)))
	}
	return keys
}
