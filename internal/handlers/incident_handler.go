package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"daycare-backend/internal/models"
	"daycare-backend/internal/services"
	"daycare-backend/pkg/utils"
)

type IncidentHandler struct {
	Service *services.IncidentService
	Logger  *zap.Logger
}

func NewIncidentHandler(s *services.IncidentService, logger *zap.Logger) *IncidentHandler {
	return &IncidentHandler{Service: s, Logger: logger}
}

// Create handles POST /api/incidents/createIncident
func (h *IncidentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIncidentRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	inc, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Incident reported successfully", utils.Fields{"incidentId": inc.ID})
}

// List handles GET /api/incidents/getAllIncidents
func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "All incidents fetched successfully", utils.Fields{"incidents": list})
}

// ListByBabysitter handles GET /api/incidents/getBabySitterIncidents/{id}
func (h *IncidentHandler) ListByBabysitter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	list, err := h.Service.ListByBabysitter(r.Context(), id)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Incidents fetched successfully", utils.Fields{"incidents": list})
}

// UpdateStatus handles PUT /api/incidents/updateIncident/{id}
func (h *IncidentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	var req models.IncidentStatusRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if err := h.Service.SetStatus(r.Context(), id, req.Status); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Incident updated successfully", utils.Fields{"incidentId": id})
}

// Delete handles DELETE /api/incidents/deleteIncident/{id}
func (h *IncidentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Incident deleted successfully", utils.Fields{"incidentId": id})
}

// SendEmail handles POST /api/incidents/sendIncidentEmail/{incident_id}
func (h *IncidentHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "incident_id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if err := h.Service.NotifyGuardian(r.Context(), id); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Incident email sent successfully", utils.Fields{"incidentId": id})
}
