package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/models"
)

// memDB is an in-memory stand-in for the Postgres schema. It reproduces the
// behaviour services rely on: existence checks, the booking unique key and
// NotFound for missing rows.
type memDB struct {
	mu          sync.Mutex
	seq         int
	managers    map[int]*models.Manager
	babysitters map[int]*models.Babysitter
	children    map[int]*models.Child
	schedules   map[int]*models.Schedule
	incidents   map[int]*models.Incident
	payments    map[int]*models.ParentPayment
	expenses    map[int]*models.Expense
}

func newMemDB() *memDB {
	return &memDB{
		managers:    map[int]*models.Manager{},
		babysitters: map[int]*models.Babysitter{},
		children:    map[int]*models.Child{},
		schedules:   map[int]*models.Schedule{},
		incidents:   map[int]*models.Incident{},
		payments:    map[int]*models.ParentPayment{},
		expenses:    map[int]*models.Expense{},
	}
}

func (db *memDB) next() int {
	db.seq++
	return db.seq
}

type fakeManagers struct{ db *memDB }

func (f fakeManagers) Create(_ context.Context, m *models.Manager) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	m.ID = f.db.next()
	m.CreatedAt = time.Now()
	cp := *m
	f.db.managers[m.ID] = &cp
	return nil
}

func (f fakeManagers) Get(_ context.Context, id int) (*models.Manager, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	m, ok := f.db.managers[id]
	if !ok {
		return nil, apperr.NotFound("Manager not found")
	}
	cp := *m
	return &cp, nil
}

func (f fakeManagers) GetByEmail(_ context.Context, email string) (*models.Manager, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, m := range f.db.managers {
		if strings.EqualFold(m.Email, email) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("Manager not found")
}

func (f fakeManagers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f fakeManagers) SetTOTPSecret(_ context.Context, id int, secret string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	m, ok := f.db.managers[id]
	if !ok {
		return apperr.NotFound("Manager not found")
	}
	m.TOTPSecret = secret
	return nil
}

func (f fakeManagers) SetTOTPEnabled(_ context.Context, id int, enabled bool) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	m, ok := f.db.managers[id]
	if !ok {
		return apperr.NotFound("Manager not found")
	}
	m.TOTPEnabled = enabled
	if !enabled {
		m.TOTPSecret = ""
	}
	return nil
}

type fakeBabysitters struct{ db *memDB }

func (f fakeBabysitters) Create(_ context.Context, b *models.Babysitter) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	b.ID = f.db.next()
	cp := *b
	f.db.babysitters[b.ID] = &cp
	return nil
}

func (f fakeBabysitters) Get(_ context.Context, id int) (*models.Babysitter, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	b, ok := f.db.babysitters[id]
	if !ok {
		return nil, apperr.NotFound("Babysitter not found")
	}
	cp := *b
	return &cp, nil
}

func (f fakeBabysitters) GetByEmail(_ context.Context, email string) (*models.Babysitter, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, b := range f.db.babysitters {
		if strings.EqualFold(b.Email, email) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("Babysitter not found")
}

func (f fakeBabysitters) List(_ context.Context) ([]*models.Babysitter, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []*models.Babysitter{}
	for _, b := range f.db.babysitters {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f fakeBabysitters) EmailTaken(_ context.Context, email string, excludeID int) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, b := range f.db.babysitters {
		if b.ID != excludeID && strings.EqualFold(b.Email, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeBabysitters) Update(_ context.Context, b *models.Babysitter) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.babysitters[b.ID]; !ok {
		return apperr.NotFound("Babysitter not found")
	}
	cp := *b
	f.db.babysitters[b.ID] = &cp
	return nil
}

func (f fakeBabysitters) Delete(_ context.Context, id int) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.babysitters[id]; !ok {
		return apperr.NotFound("Babysitter not found")
	}
	delete(f.db.babysitters, id)
	return nil
}

type fakeChildren struct{ db *memDB }

func (f fakeChildren) Create(_ context.Context, c *models.Child) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c.ID = f.db.next()
	cp := *c
	f.db.children[c.ID] = &cp
	return nil
}

func (f fakeChildren) Get(_ context.Context, id int) (*models.Child, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c, ok := f.db.children[id]
	if !ok {
		return nil, apperr.NotFound("Child not found")
	}
	cp := *c
	return &cp, nil
}

func (f fakeChildren) GetByName(_ context.Context, name string) (*models.Child, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, c := range f.db.children {
		if strings.EqualFold(c.FullName, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("Child not found")
}

func (f fakeChildren) List(_ context.Context) ([]*models.Child, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []*models.Child{}
	for _, c := range f.db.children {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f fakeChildren) EmailTaken(_ context.Context, email string, excludeID int) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, c := range f.db.children {
		if c.ID != excludeID && strings.EqualFold(c.ParentGuardianEmail, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeChildren) Update(_ context.Context, c *models.Child) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.children[c.ID]; !ok {
		return apperr.NotFound("Child not found")
	}
	cp := *c
	f.db.children[c.ID] = &cp
	return nil
}

func (f fakeChildren) Delete(_ context.Context, id int) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.children[id]; !ok {
		return apperr.NotFound("Child not found")
	}
	delete(f.db.children, id)
	return nil
}

type fakeSchedules struct{ db *memDB }

func (f fakeSchedules) Create(_ context.Context, s *models.Schedule) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.babysitters[s.BabysitterID]; !ok {
		return apperr.NotFound("Babysitter not found")
	}
	if _, ok := f.db.children[s.ChildID]; !ok {
		return apperr.NotFound("Child not found")
	}
	for _, existing := range f.db.schedules {
		if existing.BabysitterID == s.BabysitterID && existing.ChildID == s.ChildID &&
			existing.Date.Equal(s.Date) && existing.SessionType == s.SessionType {
			return apperr.Conflict("This schedule already exists")
		}
	}
	s.ID = f.db.next()
	s.AttendanceStatus = models.AttendancePending
	cp := *s
	f.db.schedules[s.ID] = &cp
	return nil
}

func (f fakeSchedules) Get(_ context.Context, id int) (*models.Schedule, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	s, ok := f.db.schedules[id]
	if !ok {
		return nil, apperr.NotFound("Schedule not found")
	}
	cp := *s
	return &cp, nil
}

func (f fakeSchedules) filter(keep func(*models.Schedule) bool) []*models.Schedule {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []*models.Schedule{}
	for _, s := range f.db.schedules {
		if keep(s) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out
}

func (f fakeSchedules) List(_ context.Context) ([]*models.Schedule, error) {
	return f.filter(func(*models.Schedule) bool { return true }), nil
}

func (f fakeSchedules) ListByBabysitter(_ context.Context, id int) ([]*models.Schedule, error) {
	return f.filter(func(s *models.Schedule) bool { return s.BabysitterID == id }), nil
}

func (f fakeSchedules) ListByBabysitterOn(_ context.Context, id int, day time.Time) ([]*models.Schedule, error) {
	return f.filter(func(s *models.Schedule) bool { return s.BabysitterID == id && s.Date.Equal(day) }), nil
}

func (f fakeSchedules) Search(_ context.Context, name string) ([]*models.Schedule, error) {
	name = strings.ToLower(name)
	f.db.mu.Lock()
	names := map[int]string{}
	for _, s := range f.db.schedules {
		n := ""
		if b, ok := f.db.babysitters[s.BabysitterID]; ok {
			n += strings.ToLower(b.Fullname) + "\x00"
		}
		if c, ok := f.db.children[s.ChildID]; ok {
			n += strings.ToLower(c.FullName)
		}
		names[s.ID] = n
	}
	f.db.mu.Unlock()
	return f.filter(func(s *models.Schedule) bool { return strings.Contains(names[s.ID], name) }), nil
}

func (f fakeSchedules) SetAttendance(_ context.Context, id int, status models.AttendanceStatus) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	s, ok := f.db.schedules[id]
	if !ok {
		return apperr.NotFound("Schedule not found")
	}
	s.AttendanceStatus = status
	return nil
}

func (f fakeSchedules) Delete(_ context.Context, id int) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.schedules[id]; !ok {
		return apperr.NotFound("Schedule not found")
	}
	delete(f.db.schedules, id)
	return nil
}

type fakeIncidents struct{ db *memDB }

func (f fakeIncidents) Create(_ context.Context, i *models.Incident) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.children[i.ChildID]; !ok {
		return apperr.NotFound("Child not found")
	}
	if _, ok := f.db.babysitters[i.BabysitterID]; !ok {
		return apperr.NotFound("Babysitter not found")
	}
	i.ID = f.db.next()
	i.Status = models.IncidentPending
	cp := *i
	f.db.incidents[i.ID] = &cp
	return nil
}

func (f fakeIncidents) Get(_ context.Context, id int) (*models.Incident, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	i, ok := f.db.incidents[id]
	if !ok {
		return nil, apperr.NotFound("Incident not found")
	}
	cp := *i
	return &cp, nil
}

func (f fakeIncidents) List(_ context.Context) ([]*models.Incident, error) {
	return f.ListByBabysitter(context.Background(), 0)
}

func (f fakeIncidents) ListByBabysitter(_ context.Context, id int) ([]*models.Incident, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []*models.Incident{}
	for _, i := range f.db.incidents {
		if id == 0 || i.BabysitterID == id {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f fakeIncidents) SetStatus(_ context.Context, id int, status models.IncidentStatus) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	i, ok := f.db.incidents[id]
	if !ok {
		return apperr.NotFound("Incident not found")
	}
	i.Status = status
	return nil
}

func (f fakeIncidents) Delete(_ context.Context, id int) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.incidents[id]; !ok {
		return apperr.NotFound("Incident not found")
	}
	delete(f.db.incidents, id)
	return nil
}

type fakePayments struct{ db *memDB }

func (f fakePayments) checkRefs(p *models.ParentPayment) error {
	if _, ok := f.db.children[p.ChildID]; !ok {
		return apperr.NotFound("Child not found")
	}
	if _, ok := f.db.schedules[p.ScheduleID]; !ok {
		return apperr.NotFound("Schedule not found")
	}
	return nil
}

func (f fakePayments) Create(_ context.Context, p *models.ParentPayment) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.checkRefs(p); err != nil {
		return err
	}
	p.ID = f.db.next()
	p.Status = models.PaymentPending
	cp := *p
	f.db.payments[p.ID] = &cp
	return nil
}

func (f fakePayments) Get(_ context.Context, id int) (*models.ParentPayment, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.payments[id]
	if !ok {
		return nil, apperr.NotFound("Parent payment not found")
	}
	cp := *p
	return &cp, nil
}

func (f fakePayments) List(ctx context.Context) ([]*models.ParentPayment, error) {
	return f.ListBetween(ctx, nil, nil)
}

func (f fakePayments) ListBetween(_ context.Context, from, to *time.Time) ([]*models.ParentPayment, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []*models.ParentPayment{}
	for _, p := range f.db.payments {
		if inRange(p.PaymentDate, from, to) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f fakePayments) Update(_ context.Context, p *models.ParentPayment) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if err := f.checkRefs(p); err != nil {
		return err
	}
	if _, ok := f.db.payments[p.ID]; !ok {
		return apperr.NotFound("Parent payment not found")
	}
	cp := *p
	f.db.payments[p.ID] = &cp
	return nil
}

func (f fakePayments) Delete(_ context.Context, id int) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.payments[id]; !ok {
		return apperr.NotFound("Parent payment not found")
	}
	delete(f.db.payments, id)
	return nil
}

type fakeExpenses struct{ db *memDB }

func (f fakeExpenses) Create(_ context.Context, e *models.Expense) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	e.ID = f.db.next()
	cp := *e
	f.db.expenses[e.ID] = &cp
	return nil
}

func (f fakeExpenses) Get(_ context.Context, id int) (*models.Expense, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	e, ok := f.db.expenses[id]
	if !ok {
		return nil, apperr.NotFound("Expense not found")
	}
	cp := *e
	return &cp, nil
}

func (f fakeExpenses) List(ctx context.Context) ([]*models.Expense, error) {
	return f.ListBetween(ctx, nil, nil)
}

func (f fakeExpenses) ListBetween(_ context.Context, from, to *time.Time) ([]*models.Expense, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []*models.Expense{}
	for _, e := range f.db.expenses {
		if inRange(e.ExpenseDate, from, to) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f fakeExpenses) Update(_ context.Context, e *models.Expense) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.expenses[e.ID]; !ok {
		return apperr.NotFound("Expense not found")
	}
	cp := *e
	f.db.expenses[e.ID] = &cp
	return nil
}

func (f fakeExpenses) Delete(_ context.Context, id int) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.expenses[id]; !ok {
		return apperr.NotFound("Expense not found")
	}
	delete(f.db.expenses, id)
	return nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// fakeCache records calls so tests can assert on hits and invalidation.
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]interface{}
	invalidated int
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string]interface{}{}} }

func (c *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return false
	}
	if s, ok := v.(*models.FinanceSummary); ok {
		if d, ok := dest.(*models.FinanceSummary); ok {
			*d = *s
			return true
		}
	}
	return false
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *fakeCache) InvalidateFinance(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]interface{}{}
	c.invalidated++
}

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func (r *fakeRevoker) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	if r.revoked == nil {
		r.revoked = map[string]time.Duration{}
	}
	r.revoked[jti] = ttl
	return nil
}

// fakeMailer captures outgoing mail; set err to simulate a transport failure.
type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct{ To, Subject, Body string }

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type fakeArchiver struct {
	keys []string
	err  error
}

func (a *fakeArchiver) Upload(_ context.Context, key string, _ []byte, _ string) error {
	if a.err != nil {
		return a.err
	}
	a.keys = append(a.keys, key)
	return nil
}

var errSMTPDown = errors.New("dial tcp: connection refused")

func (db *memDB) managerByID(id int) (*models.Manager, error) {
	return fakeManagers{db}.Get(context.Background(), id)
}
