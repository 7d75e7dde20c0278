package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"daycare-backend/internal/auth"
	"daycare-backend/internal/config"
	"daycare-backend/internal/models"
)

type fixture struct {
	db       *memDB
	cache    *fakeCache
	mailer   *fakeMailer
	revoker  *fakeRevoker
	archive  *fakeArchiver
	identity *IdentityService
	auth     *AuthService
	schedule *ScheduleService
	incident *IncidentService
	payment  *PaymentService
	expense  *ExpenseService
	finance  *FinanceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "daycare-backend"
	cfg.JWT.ExpirationHours = 720
	cfg.Rates.HalfDay = 2000
	cfg.Rates.FullDay = 5000
	cfg.Budgets = map[string]float64{"toys": 1000}

	db := newMemDB()
	f := &fixture{
		db:      db,
		cache:   newFakeCache(),
		mailer:  &fakeMailer{},
		revoker: &fakeRevoker{},
		archive: &fakeArchiver{},
	}
	managers, babysitters, children := fakeManagers{db}, fakeBabysitters{db}, fakeChildren{db}
	payments, expenses := fakePayments{db}, fakeExpenses{db}
	logger := zap.NewNop()

	f.identity = NewIdentityService(managers, babysitters, children)
	f.auth = NewAuthService(managers, babysitters, auth.NewJWTManager(cfg), f.revoker, logger)
	f.schedule = NewScheduleService(fakeSchedules{db}, cfg.SessionRate)
	f.incident = NewIncidentService(fakeIncidents{db}, children, babysitters, f.mailer, logger)
	f.payment = NewPaymentService(payments, children, f.mailer, f.cache, logger)
	f.expense = NewExpenseService(expenses, f.cache)
	f.finance = NewFinanceService(payments, expenses, f.cache, cfg.Budget, f.archive, logger)
	return f
}

func childRequest(name, email string) *models.RegisterChildRequest {
	return &models.RegisterChildRequest{
		FullName:                   name,
		Age:                        models.NewFlexInt(4),
		Gender:                     models.GenderFemale,
		ParentGuardianName:         "Jane Doe",
		ParentGuardianPhone:        "0712345678",
		ParentGuardianEmail:        email,
		ParentGuardianRelationship: "Mother",
		DurationOfStay:             models.StayFullDay,
	}
}

func babysitterRequest(email string) *models.RegisterBabysitterRequest {
	return &models.RegisterBabysitterRequest{
		Fullname:              "Grace Nakato",
		Age:                   models.NewFlexInt(24),
		Gender:                models.GenderFemale,
		NIN:                   "CF12345678",
		Email:                 email,
		Phone:                 "0700111222",
		Password:              "secret123",
		NextOfKinName:         "Peter Nakato",
		NextOfKinPhone:        "0700333444",
		NextOfKinRelationship: "Brother",
	}
}

func (f *fixture) seedChild(t *testing.T, name, email string) *models.Child {
	t.Helper()
	c, err := f.identity.RegisterChild(context.Background(), childRequest(name, email))
	require.NoError(t, err)
	return c
}

func (f *fixture) seedBabysitter(t *testing.T, email string) *models.Babysitter {
	t.Helper()
	b, err := f.identity.RegisterBabysitter(context.Background(), babysitterRequest(email))
	require.NoError(t, err)
	return b
}

func (f *fixture) seedSchedule(t *testing.T, babysitterID, childID int, date, session string) *models.Schedule {
	t.Helper()
	s, err := f.schedule.Create(context.Background(), &models.CreateScheduleRequest{
		BabysitterID: models.NewFlexInt(babysitterID),
		ChildID:      models.NewFlexInt(childID),
		Date:         date,
		SessionType:  session,
	})
	require.NoError(t, err)
	return s
}
