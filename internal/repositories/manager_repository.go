package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daycare-backend/internal/models"
)

type ManagerRepository struct {
	DB *pgxpool.Pool
}

func NewManagerRepository(db *pgxpool.Pool) *ManagerRepository {
	return &ManagerRepository{DB: db}
}

const managerColumns = `id, fullname, age, gender, nin, email, phone, password, totp_secret, totp_enabled, created_at`

func scanManager(row pgx.Row) (*models.Manager, error) {
	var m models.Manager
	err := row.Scan(&m.ID, &m.Fullname, &m.Age, &m.Gender, &m.NIN, &m.Email, &m.Phone,
		&m.PasswordHash, &m.TOTPSecret, &m.TOTPEnabled, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ManagerRepository) Create(ctx context.Context, m *models.Manager) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO managers(fullname, age, gender, nin, email, phone, password)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		m.Fullname, m.Age, m.Gender, m.NIN, m.Email, m.Phone, m.PasswordHash,
	).Scan(&m.ID, &m.CreatedAt)
	return translate(err, MsgManagerNotFound)
}

func (r *ManagerRepository) Get(ctx context.Context, id int) (*models.Manager, error) {
	m, err := scanManager(r.DB.QueryRow(ctx,
		`SELECT `+managerColumns+` FROM managers WHERE id=$1`, id))
	return m, translate(err, MsgManagerNotFound)
}

func (r *ManagerRepository) GetByEmail(ctx context.Context, email string) (*models.Manager, error) {
	m, err := scanManager(r.DB.QueryRow(ctx,
		`SELECT `+managerColumns+` FROM managers WHERE LOWER(email)=LOWER($1)`, email))
	return m, translate(err, MsgManagerNotFound)
}

func (r *ManagerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM managers WHERE LOWER(email)=LOWER($1))`, email).Scan(&exists)
	return exists, translate(err, MsgManagerNotFound)
}

// SetTOTPSecret stores a pending secret; it is not enforced until enabled.
func (r *ManagerRepository) SetTOTPSecret(ctx context.Context, id int, secret string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE managers SET totp_secret=$1 WHERE id=$2`, secret, id)
	return affected(tag, err, MsgManagerNotFound)
}

func (r *ManagerRepository) SetTOTPEnabled(ctx context.Context, id int, enabled bool) error {
	query := `UPDATE managers SET totp_enabled=$1 WHERE id=$2`
	if !enabled {
		query = `UPDATE managers SET totp_enabled=$1, totp_secret='' WHERE id=$2`
	}
	tag, err := r.DB.Exec(ctx, query, enabled, id)
	return affected(tag, err, MsgManagerNotFound)
}
