package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"daycare-backend/internal/models"
	"daycare-backend/internal/services"
	"daycare-backend/pkg/utils"
)

type ExpenseHandler struct {
	Service *services.ExpenseService
	Logger  *zap.Logger
}

func NewExpenseHandler(s *services.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{Service: s, Logger: logger}
}

// Create handles POST /api/expenses/createExpense
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExpenseRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	e, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Expense created successfully", utils.Fields{"expenseId": e.ID})
}

// List handles GET /api/expenses/getAllExpenses
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "All expenses fetched successfully", utils.Fields{"expenses": list})
}

// Update handles PUT /api/expenses/updateExpense/{id}
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	var req models.UpdateExpenseRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	res, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Expense updated successfully", utils.Fields{
		"expenseId":      id,
		"expense":        res.Record,
		"ignored_fields": res.IgnoredFields,
	})
}

// Delete handles DELETE /api/expenses/deleteExpense/{id}
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Expense deleted successfully", utils.Fields{"expenseId": id})
}
