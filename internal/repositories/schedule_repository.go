package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/models"
)

type ScheduleRepository struct {
	DB *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

const scheduleSelect = `
	SELECT s.id, s.babysitter_id, s.child_id, s.date, s.session_type, s.attendance_status, s.created_at,
	       b.fullname, c.full_name
	FROM schedules s
	JOIN baby_sitters b ON b.id = s.babysitter_id
	JOIN child c ON c.id = s.child_id`

func scanSchedule(row pgx.Row) (*models.Schedule, error) {
	var s models.Schedule
	err := row.Scan(&s.ID, &s.BabysitterID, &s.ChildID, &s.Date, &s.SessionType, &s.AttendanceStatus,
		&s.CreatedAt, &s.BabysitterName, &s.ChildName)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepository) collect(rows pgx.Rows, err error) ([]*models.Schedule, error) {
	if err != nil {
		return nil, translate(err, MsgScheduleNotFound)
	}
	defer rows.Close()

	schedules := []*models.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, translate(err, MsgScheduleNotFound)
		}
		schedules = append(schedules, s)
	}
	return schedules, translate(rows.Err(), MsgScheduleNotFound)
}

// Create checks that the babysitter and child exist and inserts the booking
// in one transaction. An identical (babysitter, child, date, session) tuple
// is rejected by the unique constraint and reported as a conflict.
func (r *ScheduleRepository) Create(ctx context.Context, s *models.Schedule) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return translate(err, MsgScheduleNotFound)
	}
	defer tx.Rollback(ctx)

	if err := lockExisting(ctx, tx, lockBabysitter, s.BabysitterID, MsgBabysitterNotFound); err != nil {
		return err
	}
	if err := lockExisting(ctx, tx, lockChild, s.ChildID, MsgChildNotFound); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO schedules(babysitter_id, child_id, date, session_type, attendance_status)
		 VALUES($1, $2, $3, $4, 'pending')
		 ON CONFLICT ON CONSTRAINT schedules_unique_booking DO NOTHING
		 RETURNING id, attendance_status, created_at`,
		s.BabysitterID, s.ChildID, s.Date, s.SessionType,
	).Scan(&s.ID, &s.AttendanceStatus, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.Conflict(MsgScheduleExists)
	}
	if err != nil {
		return translate(err, MsgScheduleNotFound)
	}

	return translate(tx.Commit(ctx), MsgScheduleNotFound)
}

func (r *ScheduleRepository) Get(ctx context.Context, id int) (*models.Schedule, error) {
	s, err := scanSchedule(r.DB.QueryRow(ctx, scheduleSelect+` WHERE s.id=$1`, id))
	return s, translate(err, MsgScheduleNotFound)
}

func (r *ScheduleRepository) List(ctx context.Context) ([]*models.Schedule, error) {
	return r.collect(r.DB.Query(ctx, scheduleSelect+` ORDER BY s.date DESC, s.id DESC`))
}

func (r *ScheduleRepository) ListByBabysitter(ctx context.Context, babysitterID int) ([]*models.Schedule, error) {
	return r.collect(r.DB.Query(ctx,
		scheduleSelect+` WHERE s.babysitter_id=$1 ORDER BY s.date DESC, s.id DESC`, babysitterID))
}

// ListByBabysitterOn returns the babysitter's bookings for one calendar day.
func (r *ScheduleRepository) ListByBabysitterOn(ctx context.Context, babysitterID int, day time.Time) ([]*models.Schedule, error) {
	return r.collect(r.DB.Query(ctx,
		scheduleSelect+` WHERE s.babysitter_id=$1 AND s.date=$2::date ORDER BY s.id`, babysitterID, day))
}

// likeEscaper makes user input match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches name as a case-insensitive substring of either the
// babysitter's or the child's name.
func (r *ScheduleRepository) Search(ctx context.Context, name string) ([]*models.Schedule, error) {
	return r.collect(r.DB.Query(ctx,
		scheduleSelect+` WHERE b.fullname ILIKE '%' || $1 || '%' ESCAPE '\'
		    OR c.full_name ILIKE '%' || $1 || '%' ESCAPE '\'
		 ORDER BY s.date DESC, s.id DESC`, likeEscaper.Replace(name)))
}

func (r *ScheduleRepository) SetAttendance(ctx context.Context, id int, status models.AttendanceStatus) error {
	tag, err := r.DB.Exec(ctx, `UPDATE schedules SET attendance_status=$1 WHERE id=$2`, status, id)
	return affected(tag, err, MsgScheduleNotFound)
}

// Delete removes the schedule; its parent payments cascade.
func (r *ScheduleRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM schedules WHERE id=$1`, id)
	return affected(tag, err, MsgScheduleNotFound)
}
