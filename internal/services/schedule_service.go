package services

import (
	"context"
	"strings"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/metrics"
	"daycare-backend/internal/models"
	"daycare-backend/internal/timeutil"
	"daycare-backend/internal/validation"
)

// RateFunc returns the babysitter earning for a canonical session type.
type RateFunc func(sessionType string) float64

type ScheduleService struct {
	Repo  ScheduleStore
	Rates RateFunc
}

func NewScheduleService(repo ScheduleStore, rates RateFunc) *ScheduleService {
	return &ScheduleService{Repo: repo, Rates: rates}
}

// Create books a babysitter for a child on a day. The store rejects a
// missing babysitter or child (not found) and an identical booking (conflict).
func (s *ScheduleService) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.Schedule, error) {
	if !req.BabysitterID.Present() || !req.ChildID.Present() || validation.Blank(req.Date, req.SessionType) {
		return nil, apperr.Invalid("Please provide all required fields")
	}
	sessionType, ok := models.ParseSessionType(req.SessionType)
	if !ok {
		return nil, apperr.Invalid("Invalid session type")
	}
	date, ok := validation.ParseDay(req.Date)
	if !ok {
		return nil, apperr.Invalid("Invalid date")
	}

	sched := &models.Schedule{
		BabysitterID: req.BabysitterID.Value,
		ChildID:      req.ChildID.Value,
		Date:         date,
		SessionType:  sessionType,
	}
	if err := s.Repo.Create(ctx, sched); err != nil {
		return nil, err
	}
	metrics.RecordsCreated.WithLabelValues("schedule").Inc()
	return sched, nil
}

func (s *ScheduleService) Get(ctx context.Context, id int) (*models.Schedule, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ScheduleService) List(ctx context.Context) ([]*models.Schedule, error) {
	return s.Repo.List(ctx)
}

// ListForBabysitter returns the caller's bookings, newest first.
func (s *ScheduleService) ListForBabysitter(ctx context.Context, babysitterID int) ([]*models.Schedule, error) {
	return s.Repo.ListByBabysitter(ctx, babysitterID)
}

// SetAttendance records present or absent; pending cannot be set back.
func (s *ScheduleService) SetAttendance(ctx context.Context, id int, status string) error {
	if validation.Blank(status) {
		return apperr.Invalid("Attendance status is required")
	}
	att := models.AttendanceStatus(strings.TrimSpace(status))
	if !att.Recordable() {
		return apperr.Invalid("Invalid attendance status")
	}
	return s.Repo.SetAttendance(ctx, id, att)
}

func (s *ScheduleService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

// Search finds bookings whose babysitter or child name contains name.
// No match is an empty result, not an error.
func (s *ScheduleService) Search(ctx context.Context, name string) ([]*models.Schedule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("Name is required")
	}
	return s.Repo.Search(ctx, name)
}

// Earnings totals a babysitter's pay for one day (today when date is
// empty). Sessions marked absent are not paid.
func (s *ScheduleService) Earnings(ctx context.Context, babysitterID int, date string) (*models.Earnings, error) {
	day := timeutil.StartOfDay(timeutil.Now())
	if !validation.Blank(date) {
		d, ok := validation.ParseDay(date)
		if !ok {
			return nil, apperr.Invalid("Invalid date")
		}
		day = d
	}

	schedules, err := s.Repo.ListByBabysitterOn(ctx, babysitterID, day)
	if err != nil {
		return nil, err
	}

	out := &models.Earnings{Date: timeutil.FormatDate(day), Schedules: []*models.Schedule{}}
	for _, sc := range schedules {
		if sc.AttendanceStatus == models.AttendanceAbsent {
			continue
		}
		out.Sessions++
		out.Total += s.Rates(string(sc.SessionType))
		out.Schedules = append(out.Schedules, sc)
	}
	return out, nil
}
