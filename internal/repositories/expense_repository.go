package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daycare-backend/internal/models"
)

type ExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

const expenseColumns = `id, category, amount, expense_date, description, created_at`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	if err := row.Scan(&e.ID, &e.Category, &e.Amount, &e.ExpenseDate, &e.Description, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) collect(rows pgx.Rows, err error) ([]*models.Expense, error) {
	if err != nil {
		return nil, translate(err, MsgExpenseNotFound)
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, translate(err, MsgExpenseNotFound)
		}
		expenses = append(expenses, e)
	}
	return expenses, translate(rows.Err(), MsgExpenseNotFound)
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO expenses(category, amount, expense_date, description)
		 VALUES($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.Category, e.Amount, e.ExpenseDate, e.Description,
	).Scan(&e.ID, &e.CreatedAt)
	return translate(err, MsgExpenseNotFound)
}

func (r *ExpenseRepository) Get(ctx context.Context, id int) (*models.Expense, error) {
	e, err := scanExpense(r.DB.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id=$1`, id))
	return e, translate(err, MsgExpenseNotFound)
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*models.Expense, error) {
	return r.collect(r.DB.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses ORDER BY expense_date DESC, id DESC`))
}

// ListBetween returns expenses dated within [from, to]; nil bounds are open.
func (r *ExpenseRepository) ListBetween(ctx context.Context, from, to *time.Time) ([]*models.Expense, error) {
	return r.collect(r.DB.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE ($1::date IS NULL OR expense_date >= $1::date)
		   AND ($2::date IS NULL OR expense_date <= $2::date)
		 ORDER BY expense_date, id`, from, to))
}

func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE expenses SET category=$1, amount=$2, expense_date=$3, description=$4 WHERE id=$5`,
		e.Category, e.Amount, e.ExpenseDate, e.Description, e.ID)
	return affected(tag, err, MsgExpenseNotFound)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	return affected(tag, err, MsgExpenseNotFound)
}
