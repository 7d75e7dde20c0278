package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daycare-backend/internal/models"
)

type BabysitterRepository struct {
	DB *pgxpool.Pool
}

func NewBabysitterRepository(db *pgxpool.Pool) *BabysitterRepository {
	return &BabysitterRepository{DB: db}
}

const babysitterColumns = `id, fullname, age, gender, nin, email, phone, password,
	next_of_kin_name, next_of_kin_phone, next_of_kin_relationship, created_at`

func scanBabysitter(row pgx.Row) (*models.Babysitter, error) {
	var b models.Babysitter
	err := row.Scan(&b.ID, &b.Fullname, &b.Age, &b.Gender, &b.NIN, &b.Email, &b.Phone, &b.PasswordHash,
		&b.NextOfKinName, &b.NextOfKinPhone, &b.NextOfKinRelationship, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BabysitterRepository) Create(ctx context.Context, b *models.Babysitter) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO baby_sitters(fullname, age, gender, nin, email, phone, password,
		 next_of_kin_name, next_of_kin_phone, next_of_kin_relationship)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		b.Fullname, b.Age, b.Gender, b.NIN, b.Email, b.Phone, b.PasswordHash,
		b.NextOfKinName, b.NextOfKinPhone, b.NextOfKinRelationship,
	).Scan(&b.ID, &b.CreatedAt)
	return translate(err, MsgBabysitterNotFound)
}

func (r *BabysitterRepository) Get(ctx context.Context, id int) (*models.Babysitter, error) {
	b, err := scanBabysitter(r.DB.QueryRow(ctx,
		`SELECT `+babysitterColumns+` FROM baby_sitters WHERE id=$1`, id))
	return b, translate(err, MsgBabysitterNotFound)
}

func (r *BabysitterRepository) GetByEmail(ctx context.Context, email string) (*models.Babysitter, error) {
	b, err := scanBabysitter(r.DB.QueryRow(ctx,
		`SELECT `+babysitterColumns+` FROM baby_sitters WHERE LOWER(email)=LOWER($1)`, email))
	return b, translate(err, MsgBabysitterNotFound)
}

func (r *BabysitterRepository) List(ctx context.Context) ([]*models.Babysitter, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+babysitterColumns+` FROM baby_sitters ORDER BY fullname`)
	if err != nil {
		return nil, translate(err, MsgBabysitterNotFound)
	}
	defer rows.Close()

	babysitters := []*models.Babysitter{}
	for rows.Next() {
		b, err := scanBabysitter(rows)
		if err != nil {
			return nil, translate(err, MsgBabysitterNotFound)
		}
		babysitters = append(babysitters, b)
	}
	return babysitters, translate(rows.Err(), MsgBabysitterNotFound)
}

// EmailTaken reports whether another babysitter (id != excludeID) uses email.
func (r *BabysitterRepository) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM baby_sitters WHERE LOWER(email)=LOWER($1) AND id<>$2)`,
		email, excludeID).Scan(&exists)
	return exists, translate(err, MsgBabysitterNotFound)
}

func (r *BabysitterRepository) Update(ctx context.Context, b *models.Babysitter) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE baby_sitters SET fullname=$1, age=$2, gender=$3, nin=$4, email=$5, phone=$6, password=$7,
		 next_of_kin_name=$8, next_of_kin_phone=$9, next_of_kin_relationship=$10
		 WHERE id=$11`,
		b.Fullname, b.Age, b.Gender, b.NIN, b.Email, b.Phone, b.PasswordHash,
		b.NextOfKinName, b.NextOfKinPhone, b.NextOfKinRelationship, b.ID)
	return affected(tag, err, MsgBabysitterNotFound)
}

// Delete removes the babysitter; schedules and incidents cascade.
func (r *BabysitterRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM baby_sitters WHERE id=$1`, id)
	return affected(tag, err, MsgBabysitterNotFound)
}
