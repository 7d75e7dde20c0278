// Package validation holds the field rules shared by every record manager.
package validation

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/badoux/checkmail"

	"daycare-backend/internal/models"
	"daycare-backend/internal/timeutil"
)

const (
	MinChildAge = 1
	MaxChildAge = 10
)

// Email checks the local@domain.tld shape. No DNS or SMTP probing.
func Email(s string) bool {
	s = strings.TrimSpace(s)
	if checkmail.ValidateFormat(s) != nil {
		return false
	}
	at := strings.LastIndex(s, "@")
	return strings.Contains(s[at+1:], ".")
}

// Phone accepts Kenyan mobile numbers: "07" prefix, exactly 10 characters.
func Phone(s string) bool {
	return strings.HasPrefix(s, "07") && len(s) == 10
}

func ChildAge(age int) bool {
	return age >= MinChildAge && age <= MaxChildAge
}

func Gender(s string) bool {
	return s == models.GenderMale || s == models.GenderFemale
}

func DurationOfStay(s string) bool {
	return s == models.StayFullDay || s == models.StayHalfDay
}

// ParseDate accepts the formats HTML date inputs and API clients send
// ("2024-05-01", "2024-05-01T10:00:00Z", "05/01/2024"). Values without a
// zone are read as East Africa Time.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, timeutil.EAT)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDay is ParseDate truncated to the calendar day.
func ParseDay(s string) (time.Time, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return t, false
	}
	return timeutil.StartOfDay(t), true
}

// Blank reports whether any of the values is empty after trimming.
func Blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
