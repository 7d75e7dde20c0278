package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds(t *testing.T) {
	// 22:30 UTC is already the next day in Nairobi.
	ts := time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)

	start := StartOfDay(ts)
	end := EndOfDay(ts)

	assert.Equal(t, "2024-05-02", FormatDate(ts))
	assert.Equal(t, 2, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.After(start))
}
