package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/models"
)

func TestScheduleCreate_DuplicateRejected(t *testing.T) {
	f := newFixture(t)
	b := f.seedBabysitter(t, "grace@example.com")
	c := f.seedChild(t, "Amy", "amy.parent@example.com")

	first := f.seedSchedule(t, b.ID, c.ID, "2024-05-01", "Full-day")
	assert.Equal(t, models.SessionFullDay, first.SessionType)
	assert.Equal(t, models.AttendancePending, first.AttendanceStatus)

	// differently cased session type is the same booking
	_, err := f.schedule.Create(context.Background(), &models.CreateScheduleRequest{
		BabysitterID: models.NewFlexInt(b.ID),
		ChildID:      models.NewFlexInt(c.ID),
		Date:         "2024-05-01",
		SessionType:  "full-day",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "This schedule already exists", apperr.MessageOf(err))
	assert.Len(t, f.db.schedules, 1)
}

func TestScheduleCreate_MissingReferences(t *testing.T) {
	f := newFixture(t)
	b := f.seedBabysitter(t, "grace@example.com")
	c := f.seedChild(t, "Amy", "amy.parent@example.com")
	ctx := context.Background()

	_, err := f.schedule.Create(ctx, &models.CreateScheduleRequest{
		BabysitterID: models.NewFlexInt(999), ChildID: models.NewFlexInt(c.ID),
		Date: "2024-05-01", SessionType: "half-day",
	})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Babysitter not found", apperr.MessageOf(err))

	_, err = f.schedule.Create(ctx, &models.CreateScheduleRequest{
		BabysitterID: models.NewFlexInt(b.ID), ChildID: models.NewFlexInt(999),
		Date: "2024-05-01", SessionType: "half-day",
	})
	assert.Equal(t, "Child not found", apperr.MessageOf(err))
	assert.Empty(t, f.db.schedules)
}

func TestScheduleCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.schedule.Create(ctx, &models.CreateScheduleRequest{ChildID: models.NewFlexInt(1), Date: "2024-05-01", SessionType: "half-day"})
	assert.Equal(t, "Please provide all required fields", apperr.MessageOf(err))

	_, err = f.schedule.Create(ctx, &models.CreateScheduleRequest{
		BabysitterID: models.NewFlexInt(1), ChildID: models.NewFlexInt(1), Date: "2024-05-01", SessionType: "overnight",
	})
	assert.Equal(t, "Invalid session type", apperr.MessageOf(err))

	_, err = f.schedule.Create(ctx, &models.CreateScheduleRequest{
		BabysitterID: models.NewFlexInt(1), ChildID: models.NewFlexInt(1), Date: "not a date", SessionType: "half-day",
	})
	assert.Equal(t, "Invalid date", apperr.MessageOf(err))
}

func TestScheduleSetAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBabysitter(t, "grace@example.com")
	c := f.seedChild(t, "Amy", "amy.parent@example.com")
	s := f.seedSchedule(t, b.ID, c.ID, "2024-05-01", "half-day")

	require.NoError(t, f.schedule.SetAttendance(ctx, s.ID, "present"))

	err := f.schedule.SetAttendance(ctx, s.ID, "pending")
	assert.Equal(t, "Invalid attendance status", apperr.MessageOf(err))
	err = f.schedule.SetAttendance(ctx, s.ID, "")
	assert.Equal(t, "Attendance status is required", apperr.MessageOf(err))

	got, err := f.schedule.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, got.AttendanceStatus)

	err = f.schedule.SetAttendance(ctx, 999, "absent")
	assert.Equal(t, "Schedule not found", apperr.MessageOf(err))
}

func TestScheduleSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBabysitter(t, "grace@example.com")
	c := f.seedChild(t, "Amy", "amy.parent@example.com")
	f.seedSchedule(t, b.ID, c.ID, "2024-05-01", "half-day")

	found, err := f.schedule.Search(ctx, "AMY")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = f.schedule.Search(ctx, "nakato")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = f.schedule.Search(ctx, "zed")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = f.schedule.Search(ctx, "  ")
	assert.Equal(t, "Name is required", apperr.MessageOf(err))
}

func TestScheduleEarnings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBabysitter(t, "grace@example.com")
	amy := f.seedChild(t, "Amy", "amy.parent@example.com")
	ben := f.seedChild(t, "Ben", "ben.parent@example.com")
	cal := f.seedChild(t, "Cal", "cal.parent@example.com")

	f.seedSchedule(t, b.ID, amy.ID, "2024-05-01", "half-day")
	f.seedSchedule(t, b.ID, ben.ID, "2024-05-01", "full-day")
	absent := f.seedSchedule(t, b.ID, cal.ID, "2024-05-01", "full-day")
	f.seedSchedule(t, b.ID, amy.ID, "2024-05-02", "full-day")
	require.NoError(t, f.schedule.SetAttendance(ctx, absent.ID, "absent"))

	got, err := f.schedule.Earnings(ctx, b.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", got.Date)
	assert.Equal(t, 2, got.Sessions)
	assert.Equal(t, 7000.0, got.Total)

	_, err = f.schedule.Earnings(ctx, b.ID, "yesterday-ish")
	assert.Equal(t, "Invalid date", apperr.MessageOf(err))
}
