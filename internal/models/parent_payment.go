package models

import "time"

type ParentPayment struct {
	ID           int           `json:"id"`
	ChildID      int           `json:"child_id"`
	ScheduleID   int           `json:"schedule_id"`
	Amount       float64       `json:"amount"`
	PaymentDate  time.Time     `json:"payment_date"`
	SessionType  SessionType   `json:"session_type"`
	Status       PaymentStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	ChildName    string        `json:"child_name,omitempty"`    // Joined from child
	ScheduleDate *time.Time    `json:"schedule_date,omitempty"` // Joined from schedules
}

type CreatePaymentRequest struct {
	ChildID     FlexInt   `json:"child_id"`
	ScheduleID  FlexInt   `json:"schedule_id"`
	Amount      FlexFloat `json:"amount"`
	PaymentDate string    `json:"payment_date"`
	SessionType string    `json:"session_type"`
}

// UpdatePaymentRequest: absent or empty fields keep the stored value.
type UpdatePaymentRequest struct {
	ChildID     FlexInt   `json:"child_id"`
	ScheduleID  FlexInt   `json:"schedule_id"`
	Amount      FlexFloat `json:"amount"`
	PaymentDate string    `json:"payment_date"`
	SessionType string    `json:"session_type"`
	Status      string    `json:"status"`
}

// UpdateResult reports the stored row and any supplied fields that were
// ignored because their values were unusable.
type UpdateResult[T any] struct {
	Record        T        `json:"record"`
	IgnoredFields []string `json:"ignored_fields"`
}
