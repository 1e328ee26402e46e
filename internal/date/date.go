// Package date provides the day-granular calendar used by all scheduling math.
package date

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrOverflow is returned when day arithmetic leaves the int32 range.
var ErrOverflow = errors.New("date: day overflow")

// unixEpochDay is the day number of 1970-01-01.
const unixEpochDay = 719162

const secondsPerDay = 24 * 60 * 60

// Date is a day count relative to 0001-01-01. It has no time-of-day component.
type Date struct {
	Day int32 `json:"day"`
}

// FromYMD returns the Date of the given civil date.
func FromYMD(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the Date of t's calendar day in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	secs := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
	return Date{Day: int32(secs/secondsPerDay + unixEpochDay)}
}

// Now returns today's date in local time. The day changes rolloverHours
// after midnight so that late-night reviews count towards the previous day.
func Now(rolloverHours int) Date {
	t := time.Now().Add(-time.Duration(rolloverHours) * time.Hour)
	return FromTime(t)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Unix((int64(d.Day)-unixEpochDay)*secondsPerDay, 0).UTC()
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) (Date, error) {
	v := int64(d.Day) + int64(n)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return d, fmt.Errorf("%w: %d%+d", ErrOverflow, d.Day, n)
	}
	return Date{Day: int32(v)}, nil
}

// Sub returns the number of days from other to d.
func (d Date) Sub(other Date) int {
	return int(d.Day) - int(other.Day)
}

// IsOnOrAfter reports whether d is the same day as other or later.
func (d Date) IsOnOrAfter(other Date) bool {
	return d.Day >= other.Day
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}
