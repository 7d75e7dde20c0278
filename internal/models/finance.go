package models

type CategoryTotal struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Budget     float64 `json:"budget,omitempty"`
	OverBudget bool    `json:"over_budget"`
}

type DailyTotal struct {
	Date     string  `json:"date"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type FinanceSummary struct {
	Start         string          `json:"start,omitempty"`
	End           string          `json:"end,omitempty"`
	TotalIncome   float64         `json:"total_income"`
	TotalExpenses float64         `json:"total_expenses"`
	NetBalance    float64         `json:"net_balance"`
	ByCategory    []CategoryTotal `json:"by_category"`
	Daily         []DailyTotal    `json:"daily"`
}

// ExportResult describes a generated finance workbook.
type ExportResult struct {
	Filename  string `json:"filename"`
	ObjectKey string `json:"object_key,omitempty"`
}
