package notify

import (
	"bytes"
	"strconv"
	"text/template"

	"daycare-backend/internal/models"
	"daycare-backend/internal/timeutil"
)

var incidentTmpl = template.Must(template.New("incident").Parse(`Dear {{.Guardian}},

We wanted to inform you of an incident involving your child {{.Child}} at Daystar Daycare.

Incident Details:
- Date: {{.Date}}
- Type: {{.Type}}
- Description: {{.Description}}
- Reported by: {{.Reporter}}

We have taken immediate action and will continue to monitor the situation.

Thank you for your understanding and support.

Best regards,
Daystar Daycare Team
`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`Dear {{.Guardian}},

This is a friendly reminder regarding your outstanding payment for {{.Child}}.

We kindly ask that you make the payment as soon as possible to avoid any inconvenience.

Please find the details below:

Child Name: {{.Child}}
Amount: {{.Amount}}
Payment Date: {{.Date}}
Session Type: {{.SessionType}}
Status: {{.Status}}

Please make the payment at your earliest convenience.

Thank you for your understanding and cooperation.

Best regards,
Daystar Daycare
`))

// Message is a rendered email ready for a Mailer.
type Message struct {
	To      string
	Subject string
	Body    string
}

// IncidentReport renders the guardian notice for an incident.
func IncidentReport(incident *models.Incident, child *models.Child, babysitter *models.Babysitter) (Message, error) {
	var buf bytes.Buffer
	err := incidentTmpl.Execute(&buf, map[string]string{
		"Guardian":    child.ParentGuardianName,
		"Child":       child.FullName,
		"Date":        incident.IncidentDate.In(timeutil.EAT).Format(timeutil.DateTimeLayout),
		"Type":        string(incident.IncidentType),
		"Description": incident.Description,
		"Reporter":    babysitter.Fullname,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      child.ParentGuardianEmail,
		Subject: "Incident Report for " + child.FullName,
		Body:    buf.String(),
	}, nil
}

// PaymentReminder renders the reminder for an unpaid parent payment.
func PaymentReminder(payment *models.ParentPayment, child *models.Child) (Message, error) {
	var buf bytes.Buffer
	err := reminderTmpl.Execute(&buf, map[string]string{
		"Guardian":    child.ParentGuardianName,
		"Child":       child.FullName,
		"Amount":      strconv.FormatFloat(payment.Amount, 'f', 2, 64),
		"Date":        timeutil.FormatDate(payment.PaymentDate),
		"SessionType": string(payment.SessionType),
		"Status":      string(payment.Status),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      child.ParentGuardianEmail,
		Subject: "Payment Reminder for " + child.FullName,
		Body:    buf.String(),
	}, nil
}
