package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daycare-backend/internal/models"
)

type ParentPaymentRepository struct {
	DB *pgxpool.Pool
}

func NewParentPaymentRepository(db *pgxpool.Pool) *ParentPaymentRepository {
	return &ParentPaymentRepository{DB: db}
}

const paymentSelect = `
	SELECT p.id, p.child_id, p.schedule_id, p.amount, p.payment_date, p.session_type, p.status, p.created_at,
	       c.full_name, s.date
	FROM parent_payments p
	JOIN child c ON c.id = p.child_id
	LEFT JOIN schedules s ON s.id = p.schedule_id`

func scanPayment(row pgx.Row) (*models.ParentPayment, error) {
	var p models.ParentPayment
	err := row.Scan(&p.ID, &p.ChildID, &p.ScheduleID, &p.Amount, &p.PaymentDate, &p.SessionType, &p.Status,
		&p.CreatedAt, &p.ChildName, &p.ScheduleDate)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParentPaymentRepository) collect(rows pgx.Rows, err error) ([]*models.ParentPayment, error) {
	if err != nil {
		return nil, translate(err, MsgPaymentNotFound)
	}
	defer rows.Close()

	payments := []*models.ParentPayment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, translate(err, MsgPaymentNotFound)
		}
		payments = append(payments, p)
	}
	return payments, translate(rows.Err(), MsgPaymentNotFound)
}

// Create checks the child and schedule and inserts in one transaction.
func (r *ParentPaymentRepository) Create(ctx context.Context, p *models.ParentPayment) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return translate(err, MsgPaymentNotFound)
	}
	defer tx.Rollback(ctx)

	if err := lockExisting(ctx, tx, lockChild, p.ChildID, MsgChildNotFound); err != nil {
		return err
	}
	if err := lockExisting(ctx, tx, lockSchedule, p.ScheduleID, MsgScheduleNotFound); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO parent_payments(child_id, schedule_id, amount, payment_date, session_type, status)
		 VALUES($1, $2, $3, $4, $5, 'pending')
		 RETURNING id, status, created_at`,
		p.ChildID, p.ScheduleID, p.Amount, p.PaymentDate, p.SessionType,
	).Scan(&p.ID, &p.Status, &p.CreatedAt)
	if err != nil {
		return translate(err, MsgPaymentNotFound)
	}

	return translate(tx.Commit(ctx), MsgPaymentNotFound)
}

func (r *ParentPaymentRepository) Get(ctx context.Context, id int) (*models.ParentPayment, error) {
	p, err := scanPayment(r.DB.QueryRow(ctx, paymentSelect+` WHERE p.id=$1`, id))
	return p, translate(err, MsgPaymentNotFound)
}

func (r *ParentPaymentRepository) List(ctx context.Context) ([]*models.ParentPayment, error) {
	return r.collect(r.DB.Query(ctx, paymentSelect+` ORDER BY p.payment_date DESC, p.id DESC`))
}

// ListBetween returns payments dated within [from, to]; nil bounds are open.
func (r *ParentPaymentRepository) ListBetween(ctx context.Context, from, to *time.Time) ([]*models.ParentPayment, error) {
	return r.collect(r.DB.Query(ctx,
		paymentSelect+` WHERE ($1::date IS NULL OR p.payment_date >= $1::date)
		   AND ($2::date IS NULL OR p.payment_date <= $2::date)
		 ORDER BY p.payment_date, p.id`, from, to))
}

// Update re-checks the referenced child and schedule and rewrites the row
// in one transaction.
func (r *ParentPaymentRepository) Update(ctx context.Context, p *models.ParentPayment) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return translate(err, MsgPaymentNotFound)
	}
	defer tx.Rollback(ctx)

	if err := lockExisting(ctx, tx, lockChild, p.ChildID, MsgChildNotFound); err != nil {
		return err
	}
	if err := lockExisting(ctx, tx, lockSchedule, p.ScheduleID, MsgScheduleNotFound); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE parent_payments SET child_id=$1, schedule_id=$2, amount=$3, payment_date=$4,
		 session_type=$5, status=$6
		 WHERE id=$7`,
		p.ChildID, p.ScheduleID, p.Amount, p.PaymentDate, p.SessionType, p.Status, p.ID)
	if err := affected(tag, err, MsgPaymentNotFound); err != nil {
		return err
	}

	return translate(tx.Commit(ctx), MsgPaymentNotFound)
}

func (r *ParentPaymentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM parent_payments WHERE id=$1`, id)
	return affected(tag, err, MsgPaymentNotFound)
}
