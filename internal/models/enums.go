package models

import "strings"

type SessionType string

const (
	SessionHalfDay SessionType = "half-day"
	SessionFullDay SessionType = "full-day"
)

// ParseSessionType matches case-insensitively ("Full-day" and "full-day")
// and returns the canonical lower-case value.
func ParseSessionType(s string) (SessionType, bool) {
	switch SessionType(strings.ToLower(strings.TrimSpace(s))) {
	case SessionHalfDay:
		return SessionHalfDay, true
	case SessionFullDay:
		return SessionFullDay, true
	}
	return "", false
}

type AttendanceStatus string

const (
	AttendancePending AttendanceStatus = "pending"
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Recordable reports whether a manager may set this attendance value.
func (a AttendanceStatus) Recordable() bool {
	return a == AttendancePresent || a == AttendanceAbsent
}

type IncidentType string

const (
	IncidentHealth   IncidentType = "health"
	IncidentBehavior IncidentType = "behavior"
	IncidentSafety   IncidentType = "safety"
	IncidentOther    IncidentType = "other"
)

func (t IncidentType) Valid() bool {
	switch t {
	case IncidentHealth, IncidentBehavior, IncidentSafety, IncidentOther:
		return true
	}
	return false
}

type IncidentStatus string

const (
	IncidentPending  IncidentStatus = "pending"
	IncidentResolved IncidentStatus = "resolved"
)

func (s IncidentStatus) Valid() bool {
	return s == IncidentPending || s == IncidentResolved
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

const (
	StayFullDay = "Full-day"
	StayHalfDay = "Half-day"
)

type Role string

const (
	RoleManager    Role = "manager"
	RoleBabysitter Role = "babysitter"
)
