package timeutil

import (
	"time"
)

// EAT is East Africa Time (UTC+3), the daycare's local zone.
var EAT *time.Location

func init() {
	var err error
	EAT, err = time.LoadLocation("Africa/Nairobi")
	if err != nil {
		// Fallback: create fixed zone if tzdata is not available
		EAT = time.FixedZone("EAT", 3*60*60)
	}
}

// Now returns the current time in EAT
func Now() time.Time {
	return time.Now().In(EAT)
}

// StartOfDay returns 00:00:00 EAT for the given time
func StartOfDay(t time.Time) time.Time {
	l := t.In(EAT)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, EAT)
}

// EndOfDay returns 23:59:59.999999999 EAT for the given time
func EndOfDay(t time.Time) time.Time {
	l := t.In(EAT)
	return time.Date(l.Year(), l.Month(), l.Day(), 23, 59, 59, 999999999, EAT)
}

// FormatDate renders the calendar date of t in EAT.
func FormatDate(t time.Time) string {
	return t.In(EAT).Format(DateLayout)
}

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006"
)
