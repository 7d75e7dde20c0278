package services

import (
	"context"
	"time"

	"daycare-backend/internal/models"
)

// Store interfaces are satisfied by the pgx repositories. Services depend
// on these so tests can run against in-memory fakes.

type ManagerStore interface {
	Create(ctx context.Context, m *models.Manager) error
	Get(ctx context.Context, id int) (*models.Manager, error)
	GetByEmail(ctx context.Context, email string) (*models.Manager, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	SetTOTPSecret(ctx context.Context, id int, secret string) error
	SetTOTPEnabled(ctx context.Context, id int, enabled bool) error
}

type BabysitterStore interface {
	Create(ctx context.Context, b *models.Babysitter) error
	Get(ctx context.Context, id int) (*models.Babysitter, error)
	GetByEmail(ctx context.Context, email string) (*models.Babysitter, error)
	List(ctx context.Context) ([]*models.Babysitter, error)
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
	Update(ctx context.Context, b *models.Babysitter) error
	Delete(ctx context.Context, id int) error
}

type ChildStore interface {
	Create(ctx context.Context, c *models.Child) error
	Get(ctx context.Context, id int) (*models.Child, error)
	GetByName(ctx context.Context, name string) (*models.Child, error)
	List(ctx context.Context) ([]*models.Child, error)
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
	Update(ctx context.Context, c *models.Child) error
	Delete(ctx context.Context, id int) error
}

type ScheduleStore interface {
	Create(ctx context.Context, s *models.Schedule) error
	Get(ctx context.Context, id int) (*models.Schedule, error)
	List(ctx context.Context) ([]*models.Schedule, error)
	ListByBabysitter(ctx context.Context, babysitterID int) ([]*models.Schedule, error)
	ListByBabysitterOn(ctx context.Context, babysitterID int, day time.Time) ([]*models.Schedule, error)
	Search(ctx context.Context, name string) ([]*models.Schedule, error)
	SetAttendance(ctx context.Context, id int, status models.AttendanceStatus) error
	Delete(ctx context.Context, id int) error
}

type IncidentStore interface {
	Create(ctx context.Context, i *models.Incident) error
	Get(ctx context.Context, id int) (*models.Incident, error)
	List(ctx context.Context) ([]*models.Incident, error)
	ListByBabysitter(ctx context.Context, babysitterID int) ([]*models.Incident, error)
	SetStatus(ctx context.Context, id int, status models.IncidentStatus) error
	Delete(ctx context.Context, id int) error
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.ParentPayment) error
	Get(ctx context.Context, id int) (*models.ParentPayment, error)
	List(ctx context.Context) ([]*models.ParentPayment, error)
	ListBetween(ctx context.Context, from, to *time.Time) ([]*models.ParentPayment, error)
	Update(ctx context.Context, p *models.ParentPayment) error
	Delete(ctx context.Context, id int) error
}

type ExpenseStore interface {
	Create(ctx context.Context, e *models.Expense) error
	Get(ctx context.Context, id int) (*models.Expense, error)
	List(ctx context.Context) ([]*models.Expense, error)
	ListBetween(ctx context.Context, from, to *time.Time) ([]*models.Expense, error)
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, id int) error
}

// SummaryCache holds computed finance summaries; *cache.Store implements it.
type SummaryCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
	InvalidateFinance(ctx context.Context)
}

// TokenRevoker records logged-out token ids; *cache.Store implements it.
type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

// Archiver uploads generated exports; *reports.S3Archiver implements it.
type Archiver interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}
