package models

import "time"

type Expense struct {
	ID          int       `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateExpenseRequest struct {
	Category    string    `json:"category"`
	Amount      FlexFloat `json:"amount"`
	ExpenseDate string    `json:"expense_date"`
	Description string    `json:"description"`
}

// UpdateExpenseRequest: absent or empty fields keep the stored value.
type UpdateExpenseRequest struct {
	Category    string    `json:"category"`
	Amount      FlexFloat `json:"amount"`
	ExpenseDate string    `json:"expense_date"`
	Description string    `json:"description"`
}
