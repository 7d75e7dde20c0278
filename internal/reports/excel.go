// Package reports renders finance exports and payment receipts.
package reports

import (
	"github.com/xuri/excelize/v2"

	"daycare-backend/internal/models"
	"daycare-backend/internal/timeutil"
)

const (
	SheetSummary  = "Summary"
	SheetPayments = "Payments"
	SheetExpenses = "Expenses"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FinanceWorkbook builds the finance export: a summary sheet plus one
// sheet per record type.
func FinanceWorkbook(summary *models.FinanceSummary, payments []*models.ParentPayment, expenses []*models.Expense) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetPayments, SheetExpenses} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return nil, err
	}

	summaryRows := [][]interface{}{
		{"Period start", orOpen(summary.Start)},
		{"Period end", orOpen(summary.End)},
		{"Total income (Shs)", summary.TotalIncome},
		{"Total expenses (Shs)", summary.TotalExpenses},
		{"Net balance (Shs)", summary.NetBalance},
		{},
		{"Category", "Spent", "Budget", "Over budget"},
	}
	for _, c := range summary.ByCategory {
		summaryRows = append(summaryRows, []interface{}{c.Category, c.Total, c.Budget, yesNo(c.OverBudget)})
	}
	if err := writeRows(f, SheetSummary, summaryRows); err != nil {
		return nil, err
	}
	f.SetCellStyle(SheetSummary, "A7", "D7", header)

	paymentRows := [][]interface{}{{"ID", "Child", "Schedule", "Amount", "Payment date", "Session", "Status"}}
	for _, p := range payments {
		paymentRows = append(paymentRows, []interface{}{
			p.ID, p.ChildName, p.ScheduleID, p.Amount, timeutil.FormatDate(p.PaymentDate), string(p.SessionType), string(p.Status),
		})
	}
	if err := writeRows(f, SheetPayments, paymentRows); err != nil {
		return nil, err
	}
	f.SetCellStyle(SheetPayments, "A1", "G1", header)

	expenseRows := [][]interface{}{{"ID", "Category", "Amount", "Date", "Description"}}
	for _, e := range expenses {
		expenseRows = append(expenseRows, []interface{}{
			e.ID, e.Category, e.Amount, timeutil.FormatDate(e.ExpenseDate), e.Description,
		})
	}
	if err := writeRows(f, SheetExpenses, expenseRows); err != nil {
		return nil, err
	}
	f.SetCellStyle(SheetExpenses, "A1", "E1", header)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}

func orOpen(s string) string {
	if s == "" {
		return "(all)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
