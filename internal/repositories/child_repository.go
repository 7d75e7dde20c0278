package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daycare-backend/internal/models"
)

type ChildRepository struct {
	DB *pgxpool.Pool
}

func NewChildRepository(db *pgxpool.Pool) *ChildRepository {
	return &ChildRepository{DB: db}
}

const childColumns = `id, full_name, age, gender, parent_guardian_name, parent_guardian_phone,
	parent_guardian_email, parent_guardian_relationship, COALESCE(special_needs, ''), duration_of_stay, created_at`

func scanChild(row pgx.Row) (*models.Child, error) {
	var c models.Child
	err := row.Scan(&c.ID, &c.FullName, &c.Age, &c.Gender, &c.ParentGuardianName, &c.ParentGuardianPhone,
		&c.ParentGuardianEmail, &c.ParentGuardianRelationship, &c.SpecialNeeds, &c.DurationOfStay, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChildRepository) Create(ctx context.Context, c *models.Child) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO child(full_name, age, gender, parent_guardian_name, parent_guardian_phone,
		 parent_guardian_email, parent_guardian_relationship, special_needs, duration_of_stay)
		 VALUES($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
		 RETURNING id, created_at`,
		c.FullName, c.Age, c.Gender, c.ParentGuardianName, c.ParentGuardianPhone,
		c.ParentGuardianEmail, c.ParentGuardianRelationship, c.SpecialNeeds, c.DurationOfStay,
	).Scan(&c.ID, &c.CreatedAt)
	return translate(err, MsgChildNotFound)
}

func (r *ChildRepository) Get(ctx context.Context, id int) (*models.Child, error) {
	c, err := scanChild(r.DB.QueryRow(ctx, `SELECT `+childColumns+` FROM child WHERE id=$1`, id))
	return c, translate(err, MsgChildNotFound)
}

// GetByName matches the full name exactly, ignoring case.
func (r *ChildRepository) GetByName(ctx context.Context, name string) (*models.Child, error) {
	c, err := scanChild(r.DB.QueryRow(ctx,
		`SELECT `+childColumns+` FROM child WHERE LOWER(full_name)=LOWER($1) ORDER BY id LIMIT 1`, name))
	return c, translate(err, MsgChildNotFound)
}

func (r *ChildRepository) List(ctx context.Context) ([]*models.Child, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+childColumns+` FROM child ORDER BY full_name`)
	if err != nil {
		return nil, translate(err, MsgChildNotFound)
	}
	defer rows.Close()

	children := []*models.Child{}
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, translate(err, MsgChildNotFound)
		}
		children = append(children, c)
	}
	return children, translate(rows.Err(), MsgChildNotFound)
}

// EmailTaken reports whether another child (id != excludeID) lists email
// as its guardian address.
func (r *ChildRepository) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM child WHERE LOWER(parent_guardian_email)=LOWER($1) AND id<>$2)`,
		email, excludeID).Scan(&exists)
	return exists, translate(err, MsgChildNotFound)
}

func (r *ChildRepository) Update(ctx context.Context, c *models.Child) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE child SET full_name=$1, age=$2, gender=$3, parent_guardian_name=$4, parent_guardian_phone=$5,
		 parent_guardian_email=$6, parent_guardian_relationship=$7, special_needs=NULLIF($8, ''), duration_of_stay=$9
		 WHERE id=$10`,
		c.FullName, c.Age, c.Gender, c.ParentGuardianName, c.ParentGuardianPhone,
		c.ParentGuardianEmail, c.ParentGuardianRelationship, c.SpecialNeeds, c.DurationOfStay, c.ID)
	return affected(tag, err, MsgChildNotFound)
}

// Delete removes the child; schedules, incidents and payments cascade.
func (r *ChildRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM child WHERE id=$1`, id)
	return affected(tag, err, MsgChildNotFound)
}
