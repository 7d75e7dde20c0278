package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/models"
)

type paymentSetup struct {
	child    *models.Child
	schedule *models.Schedule
}

func seedPaymentRefs(t *testing.T, f *fixture) paymentSetup {
	t.Helper()
	b := f.seedBabysitter(t, "grace@example.com")
	c := f.seedChild(t, "Amy", "amy.parent@example.com")
	s := f.seedSchedule(t, b.ID, c.ID, "2024-05-01", "full-day")
	return paymentSetup{child: c, schedule: s}
}

func paymentRequest(t *testing.T, body string) *models.CreatePaymentRequest {
	t.Helper()
	var req models.CreatePaymentRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestPaymentCreate_InvalidAmount(t *testing.T) {
	f := newFixture(t)
	refs := seedPaymentRefs(t, f)

	for _, amount := range []string{`-5`, `"abc"`, `"-5"`, `10.005`, `100000000`} {
		req := paymentRequest(t, `{"child_id":`+itoa(refs.child.ID)+`,"schedule_id":`+itoa(refs.schedule.ID)+
			`,"amount":`+amount+`,"payment_date":"2024-05-01","session_type":"full-day"}`)
		_, err := f.payment.Create(context.Background(), req)
		assert.Equal(t, "Invalid amount", apperr.MessageOf(err), "amount %s", amount)
	}
	assert.Empty(t, f.db.payments)
	assert.Zero(t, f.cache.invalidated)
}

func TestPaymentCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.payment.Create(ctx, paymentRequest(t, `{"child_id":1,"schedule_id":2,"payment_date":"2024-05-01","session_type":"full-day"}`))
	assert.Equal(t, "All fields are required", apperr.MessageOf(err))

	_, err = f.payment.Create(ctx, paymentRequest(t, `{"child_id":1,"schedule_id":2,"amount":100,"payment_date":"2024-05-01","session_type":"weekly"}`))
	assert.Equal(t, "Invalid session type", apperr.MessageOf(err))

	_, err = f.payment.Create(ctx, paymentRequest(t, `{"child_id":1,"schedule_id":2,"amount":"100","payment_date":"31st of never","session_type":"Full-day"}`))
	assert.Equal(t, "Invalid date", apperr.MessageOf(err))

	_, err = f.payment.Create(ctx, paymentRequest(t, `{"child_id":1,"schedule_id":2,"amount":100,"payment_date":"2024-05-01","session_type":"full-day"}`))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Empty(t, f.db.payments)
}

func TestPaymentCreate_StoresPending(t *testing.T) {
	f := newFixture(t)
	refs := seedPaymentRefs(t, f)

	p, err := f.payment.Create(context.Background(), &models.CreatePaymentRequest{
		ChildID:     models.NewFlexInt(refs.child.ID),
		ScheduleID:  models.NewFlexInt(refs.schedule.ID),
		Amount:      models.NewFlexFloat(5000),
		PaymentDate: "2024-05-01",
		SessionType: "Full-day",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, p.Status)
	assert.Equal(t, models.SessionFullDay, p.SessionType)
	assert.Equal(t, 1, f.cache.invalidated)
}

func TestPaymentUpdate_InvalidAmountKeepsStoredValue(t *testing.T) {
	f := newFixture(t)
	refs := seedPaymentRefs(t, f)
	ctx := context.Background()

	p, err := f.payment.Create(ctx, &models.CreatePaymentRequest{
		ChildID:     models.NewFlexInt(refs.child.ID),
		ScheduleID:  models.NewFlexInt(refs.schedule.ID),
		Amount:      models.NewFlexFloat(5000),
		PaymentDate: "2024-05-01",
		SessionType: "full-day",
	})
	require.NoError(t, err)

	var req models.UpdatePaymentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"abc","payment_date":"garbage","status":"paid"}`), &req))

	res, err := f.payment.Update(ctx, p.ID, &req)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, res.Record.Amount)
	assert.Equal(t, models.PaymentPaid, res.Record.Status)
	assert.Equal(t, p.PaymentDate, res.Record.PaymentDate)
	assert.Equal(t, []string{"amount", "payment_date"}, res.IgnoredFields)
}

func TestPaymentUpdate_EnumsAreHardErrors(t *testing.T) {
	f := newFixture(t)
	refs := seedPaymentRefs(t, f)
	ctx := context.Background()
	p, err := f.payment.Create(ctx, &models.CreatePaymentRequest{
		ChildID: models.NewFlexInt(refs.child.ID), ScheduleID: models.NewFlexInt(refs.schedule.ID),
		Amount: models.NewFlexFloat(2000), PaymentDate: "2024-05-01", SessionType: "half-day",
	})
	require.NoError(t, err)

	_, err = f.payment.Update(ctx, p.ID, &models.UpdatePaymentRequest{Status: "refunded", Amount: models.NewFlexFloat(10)})
	assert.Equal(t, "Invalid status", apperr.MessageOf(err))

	_, err = f.payment.Update(ctx, p.ID, &models.UpdatePaymentRequest{SessionType: "weekly"})
	assert.Equal(t, "Invalid session type", apperr.MessageOf(err))

	_, err = f.payment.Update(ctx, p.ID, &models.UpdatePaymentRequest{ChildID: models.NewFlexInt(999)})
	assert.Equal(t, "Child not found", apperr.MessageOf(err))

	stored, err := f.payment.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, stored.Amount)
	assert.Equal(t, refs.child.ID, stored.ChildID)
}

func TestPaymentSendReminder(t *testing.T) {
	f := newFixture(t)
	refs := seedPaymentRefs(t, f)
	ctx := context.Background()
	p, err := f.payment.Create(ctx, &models.CreatePaymentRequest{
		ChildID: models.NewFlexInt(refs.child.ID), ScheduleID: models.NewFlexInt(refs.schedule.ID),
		Amount: models.NewFlexFloat(5000), PaymentDate: "2024-05-01", SessionType: "full-day",
	})
	require.NoError(t, err)

	sent, err := f.payment.SendReminder(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "Payment Reminder for Amy", f.mailer.sent[0].Subject)
	assert.Contains(t, f.mailer.sent[0].Body, "5000.00")

	_, err = f.payment.Update(ctx, p.ID, &models.UpdatePaymentRequest{Status: "paid"})
	require.NoError(t, err)
	sent, err = f.payment.SendReminder(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Len(t, f.mailer.sent, 1)

	_, err = f.payment.SendReminder(ctx, 999)
	assert.Equal(t, "Parent payment not found", apperr.MessageOf(err))
}

func TestPaymentReceipt(t *testing.T) {
	f := newFixture(t)
	refs := seedPaymentRefs(t, f)
	ctx := context.Background()
	p, err := f.payment.Create(ctx, &models.CreatePaymentRequest{
		ChildID: models.NewFlexInt(refs.child.ID), ScheduleID: models.NewFlexInt(refs.schedule.ID),
		Amount: models.NewFlexFloat(5000), PaymentDate: "2024-05-01", SessionType: "full-day",
	})
	require.NoError(t, err)

	data, name, err := f.payment.Receipt(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
	assert.Contains(t, name, ".pdf")
}
