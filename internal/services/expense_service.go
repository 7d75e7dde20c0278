package services

import (
	"context"
	"strings"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/metrics"
	"daycare-backend/internal/models"
	"daycare-backend/internal/validation"
)

type ExpenseService struct {
	Repo  ExpenseStore
	Cache SummaryCache
}

func NewExpenseService(repo ExpenseStore, cache SummaryCache) *ExpenseService {
	return &ExpenseService{Repo: repo, Cache: cache}
}

func (s *ExpenseService) Create(ctx context.Context, req *models.CreateExpenseRequest) (*models.Expense, error) {
	if validation.Blank(req.Category, req.ExpenseDate, req.Description) || !req.Amount.Present() {
		return nil, apperr.Invalid("All fields are required")
	}
	if !req.Amount.Money(models.MaxExpenseAmount) {
		return nil, apperr.Invalid("Invalid amount")
	}
	date, ok := validation.ParseDay(req.ExpenseDate)
	if !ok {
		return nil, apperr.Invalid("Invalid date")
	}

	e := &models.Expense{
		Category:    strings.TrimSpace(req.Category),
		Amount:      req.Amount.Value,
		ExpenseDate: date,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.Cache.InvalidateFinance(ctx)
	metrics.RecordsCreated.WithLabelValues("expense").Inc()
	return e, nil
}

func (s *ExpenseService) Get(ctx context.Context, id int) (*models.Expense, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ExpenseService) List(ctx context.Context) ([]*models.Expense, error) {
	return s.Repo.List(ctx)
}

// Update follows the payment rule: an unusable amount or date keeps the
// stored value and is reported in IgnoredFields.
func (s *ExpenseService) Update(ctx context.Context, id int, req *models.UpdateExpenseRequest) (*models.UpdateResult[*models.Expense], error) {
	e, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ignored := []string{}

	if !validation.Blank(req.Category) {
		e.Category = strings.TrimSpace(req.Category)
	}
	if !validation.Blank(req.Description) {
		e.Description = strings.TrimSpace(req.Description)
	}
	if req.Amount.Set && req.Amount.Raw != "" {
		if req.Amount.Money(models.MaxExpenseAmount) {
			e.Amount = req.Amount.Value
		} else {
			ignored = append(ignored, "amount")
		}
	}
	if !validation.Blank(req.ExpenseDate) {
		if d, ok := validation.ParseDay(req.ExpenseDate); ok {
			e.ExpenseDate = d
		} else {
			ignored = append(ignored, "expense_date")
		}
	}

	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.Cache.InvalidateFinance(ctx)
	return &models.UpdateResult[*models.Expense]{Record: e, IgnoredFields: ignored}, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.InvalidateFinance(ctx)
	return nil
}
