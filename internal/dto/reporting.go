package dto

import "time"

// SalesReportParams defines the report date range. Dates are YYYY-MM-DD; To is inclusive.
type SalesReportParams struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
	Top  int    `form:"top,default=10" binding:"gte=1,lte=50"`
}

// Range parses the params into a half-open [from, to) range.
func (p SalesReportParams) Range() (time.Time, time.Time, error) {
	from, err := time.Parse(time.DateOnly, p.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse(time.DateOnly, p.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to.AddDate(0, 0, 1), nil
}
