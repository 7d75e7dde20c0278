package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/middleware"
	"daycare-backend/internal/models"
	"daycare-backend/internal/services"
	"daycare-backend/pkg/utils"
)

// BabysitterHandler serves the babysitter self-service portal. Every route
// acts on the authenticated babysitter only.
type BabysitterHandler struct {
	Schedules *services.ScheduleService
	Incidents *services.IncidentService
	Identity  *services.IdentityService
	Logger    *zap.Logger
}

func NewBabysitterHandler(schedules *services.ScheduleService, incidents *services.IncidentService,
	identity *services.IdentityService, logger *zap.Logger) *BabysitterHandler {
	return &BabysitterHandler{Schedules: schedules, Incidents: incidents, Identity: identity, Logger: logger}
}

func currentBabysitter(r *http.Request) (*models.Babysitter, error) {
	b, ok := middleware.GetBabysitterFromContext(r.Context())
	if !ok {
		return nil, apperr.Unauthorized("Not authorized, babysitter not found")
	}
	return b, nil
}

// MySchedule handles GET /api/babysitter/mySchedule
func (h *BabysitterHandler) MySchedule(w http.ResponseWriter, r *http.Request) {
	me, err := currentBabysitter(r)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	list, err := h.Schedules.ListForBabysitter(r.Context(), me.ID)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "My schedule fetched successfully", utils.Fields{"data": list})
}

// CreateIncident handles POST /api/babysitter/createIncident
func (h *BabysitterHandler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	me, err := currentBabysitter(r)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	var req models.CreateIncidentRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	inc, err := h.Incidents.CreateAsBabysitter(r.Context(), me.ID, &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Incident reported successfully", utils.Fields{"incidentId": inc.ID})
}

// IncidentsReportedByMe handles GET /api/babysitter/incidentsReportedByMe
func (h *BabysitterHandler) IncidentsReportedByMe(w http.ResponseWriter, r *http.Request) {
	me, err := currentBabysitter(r)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	list, err := h.Incidents.ListByBabysitter(r.Context(), me.ID)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if len(list) == 0 {
		utils.Success(w, http.StatusOK, "You have not reported any incidents", utils.Fields{"data": list})
		return
	}
	utils.Success(w, http.StatusOK, "Incidents reported by me fetched successfully", utils.Fields{"data": list})
}

// Me handles GET /api/babysitter/me
func (h *BabysitterHandler) Me(w http.ResponseWriter, r *http.Request) {
	me, err := currentBabysitter(r)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Babysitter info fetched successfully", utils.Fields{
		"data": utils.Fields{"id": me.ID, "fullname": me.Fullname},
	})
}

// ChildByName handles GET /api/babysitter/child/name/{name}
func (h *BabysitterHandler) ChildByName(w http.ResponseWriter, r *http.Request) {
	c, err := h.Identity.GetChildByName(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Child fetched successfully", utils.Fields{"data": utils.Fields{"id": c.ID}})
}

// MyPayments handles GET /api/babysitter/myPayments?date=YYYY-MM-DD
func (h *BabysitterHandler) MyPayments(w http.ResponseWriter, r *http.Request) {
	me, err := currentBabysitter(r)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	earnings, err := h.Schedules.Earnings(r.Context(), me.ID, r.URL.Query().Get("date"))
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Earnings fetched successfully", utils.Fields{"data": earnings})
}
