package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"daycare-backend/internal/config"
	"daycare-backend/internal/handlers"
	"daycare-backend/internal/middleware"
	"daycare-backend/pkg/utils"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Operations *handlers.OperationsHandler
	Schedules  *handlers.ScheduleHandler
	Incidents  *handlers.IncidentHandler
	Payments   *handlers.ParentPaymentHandler
	Expenses   *handlers.ExpenseHandler
	Finances   *handlers.FinanceHandler
	Babysitter *handlers.BabysitterHandler
	Health     *handlers.HealthHandler
}

func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.Fail(w, http.StatusNotFound, "Route not found")
	})

	// Public API routes - Authentication
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.HandleFunc("/manager/login", h.Auth.ManagerLogin).Methods("POST")
	authAPI.HandleFunc("/babySitter/login", h.Auth.BabysitterLogin).Methods("POST")
	authAPI.HandleFunc("/logout", h.Auth.Logout).Methods("POST")

	totpAPI := r.PathPrefix("/api/auth/manager/totp").Subrouter()
	totpAPI.Use(authMiddleware.RequireManager)
	totpAPI.HandleFunc("/setup", h.Auth.SetupTOTP).Methods("POST")
	totpAPI.HandleFunc("/enable", h.Auth.EnableTOTP).Methods("POST")
	totpAPI.HandleFunc("/disable", h.Auth.DisableTOTP).Methods("POST")

	// Manager sign-up is public; the rest of operations is manager-only
	r.HandleFunc("/api/operations/createAdmin", h.Operations.CreateAdmin).Methods("POST")

	opsAPI := r.PathPrefix("/api/operations").Subrouter()
	opsAPI.Use(authMiddleware.RequireManager)
	opsAPI.HandleFunc("/registerBabysitter", h.Operations.RegisterBabysitter).Methods("POST")
	opsAPI.HandleFunc("/registerChild", h.Operations.RegisterChild).Methods("POST")
	opsAPI.HandleFunc("/babysitters", h.Operations.ListBabysitters).Methods("GET")
	opsAPI.HandleFunc("/babysitters/{id}", h.Operations.GetBabysitter).Methods("GET")
	opsAPI.HandleFunc("/babysitters/{id}", h.Operations.UpdateBabysitter).Methods("PUT")
	opsAPI.HandleFunc("/babysitters/{id}", h.Operations.DeleteBabysitter).Methods("DELETE")
	opsAPI.HandleFunc("/children", h.Operations.ListChildren).Methods("GET")
	opsAPI.HandleFunc("/children/{id}", h.Operations.GetChild).Methods("GET")
	opsAPI.HandleFunc("/children/{id}", h.Operations.UpdateChild).Methods("PUT")
	opsAPI.HandleFunc("/children/{id}", h.Operations.DeleteChild).Methods("DELETE")

	schedulesAPI := r.PathPrefix("/api/schedules").Subrouter()
	schedulesAPI.Use(authMiddleware.RequireManager)
	schedulesAPI.HandleFunc("/createSchedule", h.Schedules.Create).Methods("POST")
	schedulesAPI.HandleFunc("/getAllSchedules", h.Schedules.List).Methods("GET")
	schedulesAPI.HandleFunc("/deleteSchedule/{id}", h.Schedules.Delete).Methods("DELETE")
	schedulesAPI.HandleFunc("/changeAttendanceStatus/{id}", h.Schedules.SetAttendance).Methods("PUT")
	schedulesAPI.HandleFunc("/searchSchedule", h.Schedules.Search).Methods("GET")

	incidentsAPI := r.PathPrefix("/api/incidents").Subrouter()
	incidentsAPI.Use(authMiddleware.RequireManager)
	incidentsAPI.HandleFunc("/createIncident", h.Incidents.Create).Methods("POST")
	incidentsAPI.HandleFunc("/getAllIncidents", h.Incidents.List).Methods("GET")
	incidentsAPI.HandleFunc("/updateIncident/{id}", h.Incidents.UpdateStatus).Methods("PUT")
	incidentsAPI.HandleFunc("/deleteIncident/{id}", h.Incidents.Delete).Methods("DELETE")
	incidentsAPI.HandleFunc("/getBabySitterIncidents/{id}", h.Incidents.ListByBabysitter).Methods("GET")
	incidentsAPI.HandleFunc("/sendIncidentEmail/{incident_id}", h.Incidents.SendEmail).Methods("POST")

	paymentsAPI := r.PathPrefix("/api/parentpayments").Subrouter()
	paymentsAPI.Use(authMiddleware.RequireManager)
	paymentsAPI.HandleFunc("/createParentPayment", h.Payments.Create).Methods("POST")
	paymentsAPI.HandleFunc("/getAllParentPayments", h.Payments.List).Methods("GET")
	paymentsAPI.HandleFunc("/updateParentPayment/{id}", h.Payments.Update).Methods("PUT")
	paymentsAPI.HandleFunc("/deleteParentPayment/{id}", h.Payments.Delete).Methods("DELETE")
	paymentsAPI.HandleFunc("/sendPaymentReminder/{id}", h.Payments.SendReminder).Methods("POST")
	paymentsAPI.HandleFunc("/receipt/{id}", h.Payments.Receipt).Methods("GET")

	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.Use(authMiddleware.RequireManager)
	expensesAPI.HandleFunc("/createExpense", h.Expenses.Create).Methods("POST")
	expensesAPI.HandleFunc("/getAllExpenses", h.Expenses.List).Methods("GET")
	expensesAPI.HandleFunc("/updateExpense/{id}", h.Expenses.Update).Methods("PUT")
	expensesAPI.HandleFunc("/deleteExpense/{id}", h.Expenses.Delete).Methods("DELETE")

	financesAPI := r.PathPrefix("/api/finances").Subrouter()
	financesAPI.Use(authMiddleware.RequireManager)
	financesAPI.HandleFunc("/summary", h.Finances.Summary).Methods("GET")
	financesAPI.HandleFunc("/export", h.Finances.Export).Methods("GET")

	// Babysitter self-service portal
	portalAPI := r.PathPrefix("/api/babysitter").Subrouter()
	portalAPI.Use(authMiddleware.RequireBabysitter)
	portalAPI.HandleFunc("/mySchedule", h.Babysitter.MySchedule).Methods("GET")
	portalAPI.HandleFunc("/createIncident", h.Babysitter.CreateIncident).Methods("POST")
	portalAPI.HandleFunc("/incidentsReportedByMe", h.Babysitter.IncidentsReportedByMe).Methods("GET")
	portalAPI.HandleFunc("/me", h.Babysitter.Me).Methods("GET")
	portalAPI.HandleFunc("/logout", h.Auth.Logout).Methods("POST")
	portalAPI.HandleFunc("/child/name/{name}", h.Babysitter.ChildByName).Methods("GET")
	portalAPI.HandleFunc("/myPayments", h.Babysitter.MyPayments).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Wrap applies the outer middleware chain: panic recovery, request
// logging and CORS (which must see preflight requests before routing).
func Wrap(cfg *config.Config, router http.Handler, logger *zap.Logger) http.Handler {
	h := middleware.NewCORS(cfg)(router)
	h = middleware.RequestLogger(logger)(h)
	return middleware.PanicRecovery(logger)(h)
}
