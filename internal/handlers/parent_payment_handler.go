package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"daycare-backend/internal/models"
	"daycare-backend/internal/services"
	"daycare-backend/pkg/utils"
)

type ParentPaymentHandler struct {
	Service *services.PaymentService
	Logger  *zap.Logger
}

func NewParentPaymentHandler(s *services.PaymentService, logger *zap.Logger) *ParentPaymentHandler {
	return &ParentPaymentHandler{Service: s, Logger: logger}
}

// Create handles POST /api/parentpayments/createParentPayment
func (h *ParentPaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	p, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Parent payment created successfully", utils.Fields{"payment_id": p.ID})
}

// List handles GET /api/parentpayments/getAllParentPayments
func (h *ParentPaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "All parent payments fetched successfully", utils.Fields{"payments": list})
}

// Update handles PUT /api/parentpayments/updateParentPayment/{id}
func (h *ParentPaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	var req models.UpdatePaymentRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	res, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Parent payment updated successfully", utils.Fields{
		"paymentId":      id,
		"payment":        res.Record,
		"ignored_fields": res.IgnoredFields,
	})
}

// Delete handles DELETE /api/parentpayments/deleteParentPayment/{id}
func (h *ParentPaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Parent payment deleted successfully", utils.Fields{"paymentId": id})
}

// SendReminder handles POST /api/parentpayments/sendPaymentReminder/{id}
func (h *ParentPaymentHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	sent, err := h.Service.SendReminder(r.Context(), id)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if !sent {
		utils.Success(w, http.StatusOK, "Payment already paid", utils.Fields{"paymentId": id})
		return
	}
	utils.Success(w, http.StatusOK, "Payment reminder sent successfully", utils.Fields{"paymentId": id})
}

// Receipt handles GET /api/parentpayments/receipt/{id}
func (h *ParentPaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	data, filename, err := h.Service.Receipt(r.Context(), id)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
