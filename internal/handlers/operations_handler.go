package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"daycare-backend/internal/models"
	"daycare-backend/internal/services"
	"daycare-backend/pkg/utils"
)

// OperationsHandler serves /api/operations: manager sign-up and the
// babysitter and child registers.
type OperationsHandler struct {
	Identity      *services.IdentityService
	Auth          *services.AuthService
	SecureCookies bool
	Logger        *zap.Logger
}

func NewOperationsHandler(identity *services.IdentityService, auth *services.AuthService,
	secureCookies bool, logger *zap.Logger) *OperationsHandler {
	return &OperationsHandler{Identity: identity, Auth: auth, SecureCookies: secureCookies, Logger: logger}
}

// CreateAdmin handles POST /api/operations/createAdmin. The new manager is
// signed in straight away.
func (h *OperationsHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterManagerRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}

	m, err := h.Identity.RegisterManager(r.Context(), &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	token, err := h.Auth.IssueToken(m.ID, models.RoleManager)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	setTokenCookie(w, token, h.Auth.TokenTTL(), h.SecureCookies)
	utils.Success(w, http.StatusCreated, "Admin registered successfully", utils.Fields{"adminId": m.ID})
}

// RegisterBabysitter handles POST /api/operations/registerBabysitter
func (h *OperationsHandler) RegisterBabysitter(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterBabysitterRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	b, err := h.Identity.RegisterBabysitter(r.Context(), &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Babysitter registered successfully", utils.Fields{"babysitterId": b.ID})
}

// RegisterChild handles POST /api/operations/registerChild
func (h *OperationsHandler) RegisterChild(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterChildRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	c, err := h.Identity.RegisterChild(r.Context(), &req)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Child registered successfully", utils.Fields{"childId": c.ID})
}

func (h *OperationsHandler) ListBabysitters(w http.ResponseWriter, r *http.Request) {
	list, err := h.Identity.ListBabysitters(r.Context())
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "All babysitters retrieved successfully", utils.Fields{"babysitters": list})
}

func (h *OperationsHandler) GetBabysitter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	b, err := h.Identity.GetBabysitter(r.Context(), id)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Babysitter retrieved successfully", utils.Fields{"babysitter": b})
}

func (h *OperationsHandler) UpdateBabysitter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	var req models.UpdateBabysitterRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if _, err := h.Identity.UpdateBabysitter(r.Context(), id, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Babysitter updated successfully", utils.Fields{"babysitterId": id})
}

func (h *OperationsHandler) DeleteBabysitter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if err := h.Identity.DeleteBabysitter(r.Context(), id); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Babysitter deleted successfully", utils.Fields{"babysitterId": id})
}

func (h *OperationsHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	list, err := h.Identity.ListChildren(r.Context())
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "All children retrieved successfully", utils.Fields{"children": list})
}

func (h *OperationsHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	c, err := h.Identity.GetChild(r.Context(), id)
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Child retrieved successfully", utils.Fields{"child": c})
}

func (h *OperationsHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	var req models.UpdateChildRequest
	if err := decode(r, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if _, err := h.Identity.UpdateChild(r.Context(), id, &req); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Child updated successfully", utils.Fields{"childId": id})
}

func (h *OperationsHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	if err := h.Identity.DeleteChild(r.Context(), id); err != nil {
		respondError(h.Logger, w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Child deleted successfully", utils.Fields{"childId": id})
}
