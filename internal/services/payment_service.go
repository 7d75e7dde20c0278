package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/metrics"
	"daycare-backend/internal/models"
	"daycare-backend/internal/notify"
	"daycare-backend/internal/reports"
	"daycare-backend/internal/validation"
)

type PaymentService struct {
	Repo     PaymentStore
	Children ChildStore
	Mailer   notify.Mailer
	Cache    SummaryCache
	Logger   *zap.Logger
}

func NewPaymentService(repo PaymentStore, children ChildStore, mailer notify.Mailer,
	cache SummaryCache, logger *zap.Logger) *PaymentService {
	return &PaymentService{Repo: repo, Children: children, Mailer: mailer, Cache: cache, Logger: logger}
}

// Create records an expected parent payment. Checks run in order: required
// fields, amount, session type, date, then the referenced child and schedule.
func (s *PaymentService) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.ParentPayment, error) {
	if !req.ChildID.Present() || !req.ScheduleID.Present() || !req.Amount.Present() ||
		validation.Blank(req.PaymentDate, req.SessionType) {
		return nil, apperr.Invalid("All fields are required")
	}
	if !req.Amount.Money(models.MaxPaymentAmount) {
		return nil, apperr.Invalid("Invalid amount")
	}
	sessionType, ok := models.ParseSessionType(req.SessionType)
	if !ok {
		return nil, apperr.Invalid("Invalid session type")
	}
	date, ok := validation.ParseDay(req.PaymentDate)
	if !ok {
		return nil, apperr.Invalid("Invalid date")
	}

	p := &models.ParentPayment{
		ChildID:     req.ChildID.Value,
		ScheduleID:  req.ScheduleID.Value,
		Amount:      req.Amount.Value,
		PaymentDate: date,
		SessionType: sessionType,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.Cache.InvalidateFinance(ctx)
	metrics.RecordsCreated.WithLabelValues("parent_payment").Inc()
	return p, nil
}

func (s *PaymentService) Get(ctx context.Context, id int) (*models.ParentPayment, error) {
	return s.Repo.Get(ctx, id)
}

func (s *PaymentService) List(ctx context.Context) ([]*models.ParentPayment, error) {
	return s.Repo.List(ctx)
}

// Update applies the supplied fields. An unusable amount or payment date
// keeps the stored value and is listed in IgnoredFields; an unknown session
// type or status rejects the request.
func (s *PaymentService) Update(ctx context.Context, id int, req *models.UpdatePaymentRequest) (*models.UpdateResult[*models.ParentPayment], error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ignored := []string{}

	if req.ChildID.Present() {
		p.ChildID = req.ChildID.Value
	}
	if req.ScheduleID.Present() {
		p.ScheduleID = req.ScheduleID.Value
	}
	if req.Amount.Set && req.Amount.Raw != "" {
		if req.Amount.Money(models.MaxPaymentAmount) {
			p.Amount = req.Amount.Value
		} else {
			ignored = append(ignored, "amount")
		}
	}
	if !validation.Blank(req.PaymentDate) {
		if d, ok := validation.ParseDay(req.PaymentDate); ok {
			p.PaymentDate = d
		} else {
			ignored = append(ignored, "payment_date")
		}
	}
	if !validation.Blank(req.SessionType) {
		st, ok := models.ParseSessionType(req.SessionType)
		if !ok {
			return nil, apperr.Invalid("Invalid session type")
		}
		p.SessionType = st
	}
	if !validation.Blank(req.Status) {
		st := models.PaymentStatus(strings.TrimSpace(req.Status))
		if !st.Valid() {
			return nil, apperr.Invalid("Invalid status")
		}
		p.Status = st
	}

	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.Cache.InvalidateFinance(ctx)

	if len(ignored) > 0 {
		s.Logger.Info("payment update kept stored values",
			zap.Int("payment_id", id), zap.Strings("ignored_fields", ignored))
	}

	fresh, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.UpdateResult[*models.ParentPayment]{Record: fresh, IgnoredFields: ignored}, nil
}

func (s *PaymentService) Delete(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.InvalidateFinance(ctx)
	return nil
}

// SendReminder emails the guardian about an unpaid payment. It reports
// sent=false without error when the payment is already paid.
func (s *PaymentService) SendReminder(ctx context.Context, id int) (bool, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if p.Status == models.PaymentPaid {
		return false, nil
	}
	child, err := s.Children.Get(ctx, p.ChildID)
	if err != nil {
		return false, err
	}

	msg, err := notify.PaymentReminder(p, child)
	if err != nil {
		return false, apperr.Internal(err, "failed to render payment reminder")
	}
	if err := s.Mailer.Send(ctx, msg.To, msg.Subject, msg.Body); err != nil {
		metrics.NotificationsSent.WithLabelValues("reminder", metrics.ResultFailed).Inc()
		s.Logger.Error("payment reminder failed", zap.Int("payment_id", id), zap.Error(err))
		return false, apperr.Internal(err, "Failed to send payment reminder")
	}
	metrics.NotificationsSent.WithLabelValues("reminder", metrics.ResultSent).Inc()
	return true, nil
}

// Receipt renders the PDF receipt and a download filename.
func (s *PaymentService) Receipt(ctx context.Context, id int) ([]byte, string, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	child, err := s.Children.Get(ctx, p.ChildID)
	if err != nil {
		return nil, "", err
	}
	data, err := reports.PaymentReceipt(p, child)
	if err != nil {
		return nil, "", apperr.Internal(err, "failed to render receipt")
	}
	return data, fmt.Sprintf("receipt_PP-%06d.pdf", p.ID), nil
}
