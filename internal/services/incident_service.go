package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/metrics"
	"daycare-backend/internal/models"
	"daycare-backend/internal/notify"
	"daycare-backend/internal/validation"
)

type IncidentService struct {
	Repo        IncidentStore
	Children    ChildStore
	Babysitters BabysitterStore
	Mailer      notify.Mailer
	Logger      *zap.Logger
}

func NewIncidentService(repo IncidentStore, children ChildStore, babysitters BabysitterStore,
	mailer notify.Mailer, logger *zap.Logger) *IncidentService {
	return &IncidentService{
		Repo:        repo,
		Children:    children,
		Babysitters: babysitters,
		Mailer:      mailer,
		Logger:      logger,
	}
}

// Create records an incident reported by a manager on behalf of the
// babysitter named in the request.
func (s *IncidentService) Create(ctx context.Context, req *models.CreateIncidentRequest) (*models.Incident, error) {
	switch {
	case !req.ChildID.Present():
		return nil, apperr.Invalid("Child ID is required")
	case !req.BabysitterID.Present():
		return nil, apperr.Invalid("Babysitter ID is required")
	}
	return s.create(ctx, req.ChildID.Value, req.BabysitterID.Value, req)
}

// CreateAsBabysitter records an incident for the authenticated babysitter.
// Any babysitter_id in the body is ignored.
func (s *IncidentService) CreateAsBabysitter(ctx context.Context, babysitterID int, req *models.CreateIncidentRequest) (*models.Incident, error) {
	if !req.ChildID.Present() {
		return nil, apperr.Invalid("Child ID is required")
	}
	return s.create(ctx, req.ChildID.Value, babysitterID, req)
}

func (s *IncidentService) create(ctx context.Context, childID, babysitterID int, req *models.CreateIncidentRequest) (*models.Incident, error) {
	switch {
	case validation.Blank(req.IncidentDate):
		return nil, apperr.Invalid("Incident date is required")
	case validation.Blank(req.IncidentType):
		return nil, apperr.Invalid("Incident type is required")
	case validation.Blank(req.Description):
		return nil, apperr.Invalid("Description is required")
	}

	incidentType := models.IncidentType(strings.TrimSpace(req.IncidentType))
	if !incidentType.Valid() {
		return nil, apperr.Invalid("Invalid incident type")
	}
	date, ok := validation.ParseDate(req.IncidentDate)
	if !ok {
		return nil, apperr.Invalid("Invalid date")
	}

	incident := &models.Incident{
		ChildID:      childID,
		BabysitterID: babysitterID,
		IncidentDate: date,
		IncidentType: incidentType,
		Description:  strings.TrimSpace(req.Description),
	}
	if err := s.Repo.Create(ctx, incident); err != nil {
		return nil, err
	}
	metrics.RecordsCreated.WithLabelValues("incident").Inc()
	return incident, nil
}

func (s *IncidentService) Get(ctx context.Context, id int) (*models.Incident, error) {
	return s.Repo.Get(ctx, id)
}

func (s *IncidentService) List(ctx context.Context) ([]*models.Incident, error) {
	return s.Repo.List(ctx)
}

func (s *IncidentService) ListByBabysitter(ctx context.Context, babysitterID int) ([]*models.Incident, error) {
	return s.Repo.ListByBabysitter(ctx, babysitterID)
}

// SetStatus moves an incident between pending and resolved. Any other
// value is rejected before the store is touched.
func (s *IncidentService) SetStatus(ctx context.Context, id int, status string) error {
	if validation.Blank(status) {
		return apperr.Invalid("Status is required")
	}
	st := models.IncidentStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return apperr.Invalid("Invalid status")
	}
	return s.Repo.SetStatus(ctx, id, st)
}

func (s *IncidentService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

// NotifyGuardian emails the incident report to the child's guardian.
// Delivery is attempted once.
func (s *IncidentService) NotifyGuardian(ctx context.Context, id int) error {
	incident, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	child, err := s.Children.Get(ctx, incident.ChildID)
	if err != nil {
		return err
	}
	babysitter, err := s.Babysitters.Get(ctx, incident.BabysitterID)
	if err != nil {
		return err
	}

	msg, err := notify.IncidentReport(incident, child, babysitter)
	if err != nil {
		return apperr.Internal(err, "failed to render incident email")
	}
	if err := s.Mailer.Send(ctx, msg.To, msg.Subject, msg.Body); err != nil {
		metrics.NotificationsSent.WithLabelValues("incident", metrics.ResultFailed).Inc()
		s.Logger.Error("incident email failed", zap.Int("incident_id", id), zap.Error(err))
		return apperr.Internal(err, "Failed to send incident email")
	}
	metrics.NotificationsSent.WithLabelValues("incident", metrics.ResultSent).Inc()
	s.Logger.Info("incident email sent", zap.Int("incident_id", id), zap.Int("child_id", child.ID))
	return nil
}
