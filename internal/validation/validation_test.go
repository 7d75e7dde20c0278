package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.True(t, Email("amy@x.com"))
	assert.True(t, Email("jane.doe@daystar.co.ke"))
	assert.False(t, Email("amy@x"))
	assert.False(t, Email("not-an-email"))
	assert.False(t, Email(""))
}

func TestPhone(t *testing.T) {
	assert.True(t, Phone("0712345678"))
	assert.False(t, Phone("071234567"))
	assert.False(t, Phone("07123456789"))
	assert.False(t, Phone("0812345678"))
	assert.False(t, Phone("+254712345678"))
}

func TestChildAge(t *testing.T) {
	for _, age := range []int{1, 4, 10} {
		assert.True(t, ChildAge(age), age)
	}
	for _, age := range []int{-1, 0, 11, 40} {
		assert.False(t, ChildAge(age), age)
	}
}

func TestGenderAndDuration(t *testing.T) {
	assert.True(t, Gender("Female"))
	assert.True(t, Gender("Male"))
	assert.False(t, Gender("female"))
	assert.False(t, Gender("Other"))

	assert.True(t, DurationOfStay("Full-day"))
	assert.True(t, DurationOfStay("Half-day"))
	assert.False(t, DurationOfStay("full-day"))
	assert.False(t, DurationOfStay("Weekly"))
}

func TestParseDay(t *testing.T) {
	d, ok := ParseDay("2024-05-01")
	assert.True(t, ok)
	assert.Equal(t, "2024-05-01", d.Format("2006-01-02"))

	d, ok = ParseDay("2024-05-01T10:30:00")
	assert.True(t, ok)
	assert.Equal(t, 0, d.Hour())

	_, ok = ParseDay("yesterday-ish")
	assert.False(t, ok)
	_, ok = ParseDay("")
	assert.False(t, ok)
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank("a", " "))
	assert.False(t, Blank("a", "b"))
	assert.False(t, Blank())
}
