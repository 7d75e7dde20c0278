package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daycare-backend/internal/models"
)

type IncidentRepository struct {
	DB *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) *IncidentRepository {
	return &IncidentRepository{DB: db}
}

const incidentSelect = `
	SELECT i.id, i.child_id, i.babysitter_id, i.incident_date, i.incident_type, i.description, i.status,
	       i.created_at, c.full_name, b.fullname
	FROM incidents i
	JOIN child c ON c.id = i.child_id
	JOIN baby_sitters b ON b.id = i.babysitter_id`

func scanIncident(row pgx.Row) (*models.Incident, error) {
	var i models.Incident
	err := row.Scan(&i.ID, &i.ChildID, &i.BabysitterID, &i.IncidentDate, &i.IncidentType, &i.Description,
		&i.Status, &i.CreatedAt, &i.ChildName, &i.BabysitterName)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *IncidentRepository) collect(rows pgx.Rows, err error) ([]*models.Incident, error) {
	if err != nil {
		return nil, translate(err, MsgIncidentNotFound)
	}
	defer rows.Close()

	incidents := []*models.Incident{}
	for rows.Next() {
		i, err := scanIncident(rows)
		if err != nil {
			return nil, translate(err, MsgIncidentNotFound)
		}
		incidents = append(incidents, i)
	}
	return incidents, translate(rows.Err(), MsgIncidentNotFound)
}

// Create checks the child and babysitter and inserts in one transaction.
func (r *IncidentRepository) Create(ctx context.Context, i *models.Incident) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return translate(err, MsgIncidentNotFound)
	}
	defer tx.Rollback(ctx)

	if err := lockExisting(ctx, tx, lockChild, i.ChildID, MsgChildNotFound); err != nil {
		return err
	}
	if err := lockExisting(ctx, tx, lockBabysitter, i.BabysitterID, MsgBabysitterNotFound); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO incidents(child_id, babysitter_id, incident_date, incident_type, description, status)
		 VALUES($1, $2, $3, $4, $5, 'pending')
		 RETURNING id, status, created_at`,
		i.ChildID, i.BabysitterID, i.IncidentDate, i.IncidentType, i.Description,
	).Scan(&i.ID, &i.Status, &i.CreatedAt)
	if err != nil {
		return translate(err, MsgIncidentNotFound)
	}

	return translate(tx.Commit(ctx), MsgIncidentNotFound)
}

func (r *IncidentRepository) Get(ctx context.Context, id int) (*models.Incident, error) {
	i, err := scanIncident(r.DB.QueryRow(ctx, incidentSelect+` WHERE i.id=$1`, id))
	return i, translate(err, MsgIncidentNotFound)
}

func (r *IncidentRepository) List(ctx context.Context) ([]*models.Incident, error) {
	return r.collect(r.DB.Query(ctx, incidentSelect+` ORDER BY i.incident_date DESC, i.id DESC`))
}

func (r *IncidentRepository) ListByBabysitter(ctx context.Context, babysitterID int) ([]*models.Incident, error) {
	return r.collect(r.DB.Query(ctx,
		incidentSelect+` WHERE i.babysitter_id=$1 ORDER BY i.incident_date DESC, i.id DESC`, babysitterID))
}

func (r *IncidentRepository) SetStatus(ctx context.Context, id int, status models.IncidentStatus) error {
	tag, err := r.DB.Exec(ctx, `UPDATE incidents SET status=$1 WHERE id=$2`, status, id)
	return affected(tag, err, MsgIncidentNotFound)
}

func (r *IncidentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM incidents WHERE id=$1`, id)
	return affected(tag, err, MsgIncidentNotFound)
}
