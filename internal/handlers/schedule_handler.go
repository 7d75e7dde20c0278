package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"daycare-backend/internal/models"
	"daycare-backend/internal/services"
	"daycare-backend/pkg/utils"
)

type ScheduleHandler struct {
	Service *services.ScheduleService
	Logger  *zap.Logger
}

func NewScheduleHandler(s *services.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Service: s, Logger: logger}
}

// Create handles POST /api/schedules/createSchedule
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateScheduleRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	s, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Schedule created successfully", utils.Fields{"scheduleId": s.ID})
}

// List handles GET /api/schedules/getAllSchedules
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "All schedules fetched successfully", utils.Fields{"schedules": list})
}

// Delete handles DELETE /api/schedules/deleteSchedule/{id}
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Schedule deleted successfully", utils.Fields{"scheduleId": id})
}

// SetAttendance handles PUT /api/schedules/changeAttendanceStatus/{id}
func (h *ScheduleHandler) SetAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	var req models.AttendanceRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if err := h.Service.SetAttendance(r.Context(), id, req.AttendanceStatus); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Attendance status changed successfully", utils.Fields{"scheduleId": id})
}

// Search handles GET /api/schedules/searchSchedule?name=
func (h *ScheduleHandler) Search(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Search(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	message := "Schedules found successfully"
	if len(list) == 0 {
		message = "No schedules found"
	}
	utils.Success(w, http.StatusOK, message, utils.Fields{"schedules": list})
}
