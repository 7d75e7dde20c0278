package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"daycare-backend/internal/reports"
	"daycare-backend/internal/services"
	"daycare-backend/pkg/utils"
)

// ArchiveKeyHeader reports where an exported workbook was archived.
const ArchiveKeyHeader = "X-Archive-Key"

type FinanceHandler struct {
	Service *services.FinanceService
	Logger  *zap.Logger
}

func NewFinanceHandler(s *services.FinanceService, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{Service: s, Logger: logger}
}

// Summary handles GET /api/finances/summary?start=&end=
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summary, err := h.Service.Summary(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Finance summary fetched successfully", utils.Fields{"data": summary})
}

// Export handles GET /api/finances/export?start=&end= and streams the workbook.
func (h *FinanceHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, res, err := h.Service.Export(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if res.ObjectKey != "" {
		w.Header().Set(ArchiveKeyHeader, res.ObjectKey)
	}
	w.Header().Set("Content-Type", reports.XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
