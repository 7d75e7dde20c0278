package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/cache"
	"daycare-backend/internal/models"
	"daycare-backend/internal/reports"
	"daycare-backend/internal/timeutil"
	"daycare-backend/internal/validation"
)

// BudgetFunc returns the budget threshold for an expense category (0 = none).
type BudgetFunc func(category string) float64

type FinanceService struct {
	Payments PaymentStore
	Expenses ExpenseStore
	Cache    SummaryCache
	Budgets  BudgetFunc
	Archive  Archiver // nil when S3 archiving is disabled
	Logger   *zap.Logger
}

func NewFinanceService(payments PaymentStore, expenses ExpenseStore, cache SummaryCache,
	budgets BudgetFunc, archive Archiver, logger *zap.Logger) *FinanceService {
	return &FinanceService{
		Payments: payments,
		Expenses: expenses,
		Cache:    cache,
		Budgets:  budgets,
		Archive:  archive,
		Logger:   logger,
	}
}

// dateRange parses optional start/end query values. Empty means open-ended.
func dateRange(start, end string) (from, to *time.Time, err error) {
	if !validation.Blank(start) {
		d, ok := validation.ParseDay(start)
		if !ok {
			return nil, nil, apperr.Invalid("Invalid date")
		}
		from = &d
	}
	if !validation.Blank(end) {
		d, ok := validation.ParseDay(end)
		if !ok {
			return nil, nil, apperr.Invalid("Invalid date")
		}
		to = &d
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, apperr.Invalid("End date must not be before start date")
	}
	return from, to, nil
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timeutil.FormatDate(*t)
}

// Summary totals paid parent payments against expenses for the range.
// Results are cached until the next payment or expense write.
func (s *FinanceService) Summary(ctx context.Context, start, end string) (*models.FinanceSummary, error) {
	from, to, err := dateRange(start, end)
	if err != nil {
		return nil, err
	}
	key := cache.FinanceSummaryKey(formatOptional(from), formatOptional(to))

	var cached models.FinanceSummary
	if s.Cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	payments, expenses, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary := s.summarize(from, to, payments, expenses)
	s.Cache.SetJSON(ctx, key, summary, cache.SummaryTTL)
	return summary, nil
}

func (s *FinanceService) load(ctx context.Context, from, to *time.Time) ([]*models.ParentPayment, []*models.Expense, error) {
	payments, err := s.Payments.ListBetween(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.Expenses.ListBetween(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}
	return payments, expenses, nil
}

func (s *FinanceService) summarize(from, to *time.Time, payments []*models.ParentPayment, expenses []*models.Expense) *models.FinanceSummary {
	out := &models.FinanceSummary{
		Start:      formatOptional(from),
		End:        formatOptional(to),
		ByCategory: []models.CategoryTotal{},
		Daily:      []models.DailyTotal{},
	}

	daily := map[string]*models.DailyTotal{}
	day := func(t time.Time) *models.DailyTotal {
		k := timeutil.FormatDate(t)
		d, ok := daily[k]
		if !ok {
			d = &models.DailyTotal{Date: k}
			daily[k] = d
		}
		return d
	}

	for _, p := range payments {
		if p.Status != models.PaymentPaid {
			continue
		}
		out.TotalIncome += p.Amount
		day(p.PaymentDate).Income += p.Amount
	}

	byCategory := map[string]float64{}
	for _, e := range expenses {
		out.TotalExpenses += e.Amount
		byCategory[e.Category] += e.Amount
		day(e.ExpenseDate).Expenses += e.Amount
	}
	out.NetBalance = out.TotalIncome - out.TotalExpenses

	for category, total := range byCategory {
		ct := models.CategoryTotal{Category: category, Total: total}
		if s.Budgets != nil {
			ct.Budget = s.Budgets(category)
		}
		ct.OverBudget = ct.Budget > 0 && total > ct.Budget
		out.ByCategory = append(out.ByCategory, ct)
	}
	sort.Slice(out.ByCategory, func(i, j int) bool {
		return strings.ToLower(out.ByCategory[i].Category) < strings.ToLower(out.ByCategory[j].Category)
	})

	for _, d := range daily {
		out.Daily = append(out.Daily, *d)
	}
	sort.Slice(out.Daily, func(i, j int) bool { return out.Daily[i].Date < out.Daily[j].Date })
	return out
}

// Export builds the finance workbook for the range. When an archiver is
// configured the workbook is also uploaded and its object key returned.
func (s *FinanceService) Export(ctx context.Context, start, end string) ([]byte, *models.ExportResult, error) {
	from, to, err := dateRange(start, end)
	if err != nil {
		return nil, nil, err
	}
	payments, expenses, err := s.load(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}
	summary := s.summarize(from, to, payments, expenses)

	data, err := reports.FinanceWorkbook(summary, payments, expenses)
	if err != nil {
		return nil, nil, apperr.Internal(err, "failed to build finance workbook")
	}

	stamp := timeutil.Now().Format("20060102_150405")
	result := &models.ExportResult{Filename: fmt.Sprintf("finance_%s.xlsx", stamp)}

	if s.Archive != nil {
		key := "exports/" + result.Filename
		if err := s.Archive.Upload(ctx, key, data, reports.XLSXContentType); err != nil {
			s.Logger.Error("finance export upload failed", zap.String("key", key), zap.Error(err))
		} else {
			result.ObjectKey = key
		}
	}
	return data, result, nil
}
