package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"daycare-backend/internal/apperr"
)

// Not-found messages shared with the services.
const (
	MsgManagerNotFound    = "Manager not found"
	MsgBabysitterNotFound = "Babysitter not found"
	MsgChildNotFound      = "Child not found"
	MsgScheduleNotFound   = "Schedule not found"
	MsgIncidentNotFound   = "Incident not found"
	MsgPaymentNotFound    = "Parent payment not found"
	MsgExpenseNotFound    = "Expense not found"
	MsgScheduleExists     = "This schedule already exists"
)

// Postgres SQLSTATE codes we translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translate maps driver errors onto apperr kinds. notFound is the message
// used when the row is missing.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(notFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &apperr.Error{Kind: apperr.KindConflict, Message: "Record already exists", Err: err}
		case pgForeignKeyViolation:
			return &apperr.Error{Kind: apperr.KindNotFound, Message: "Referenced record not found", Err: err}
		case pgCheckViolation:
			return &apperr.Error{Kind: apperr.KindInvalid, Message: "Invalid value", Err: err}
		}
	}
	return apperr.Internal(err, "database error")
}

// lockExisting takes a share lock on a referenced row so it cannot be
// deleted before the surrounding transaction commits.
func lockExisting(ctx context.Context, tx pgx.Tx, query string, id int, notFound string) error {
	var got int
	if err := tx.QueryRow(ctx, query, id).Scan(&got); err != nil {
		return translate(err, notFound)
	}
	return nil
}

const (
	lockBabysitter = `SELECT id FROM baby_sitters WHERE id=$1 FOR SHARE`
	lockChild      = `SELECT id FROM child WHERE id=$1 FOR SHARE`
	lockSchedule   = `SELECT id FROM schedules WHERE id=$1 FOR SHARE`
)

// affected turns a zero-row UPDATE/DELETE into a not-found error.
func affected(tag pgconn.CommandTag, err error, notFound string) error {
	if err != nil {
		return translate(err, notFound)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(notFound)
	}
	return nil
}
