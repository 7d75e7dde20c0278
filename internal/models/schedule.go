package models

import "time"

type Schedule struct {
	ID               int              `json:"id"`
	BabysitterID     int              `json:"babysitter_id"`
	ChildID          int              `json:"child_id"`
	Date             time.Time        `json:"date"`
	SessionType      SessionType      `json:"session_type"`
	AttendanceStatus AttendanceStatus `json:"attendance_status"`
	CreatedAt        time.Time        `json:"created_at"`
	BabysitterName   string           `json:"babysitter_name,omitempty"` // Joined from baby_sitters
	ChildName        string           `json:"child_name,omitempty"`      // Joined from child
}

type CreateScheduleRequest struct {
	BabysitterID FlexInt `json:"babysitter_id"`
	ChildID      FlexInt `json:"child_id"`
	Date         string  `json:"date"`
	SessionType  string  `json:"session_type"`
}

type AttendanceRequest struct {
	AttendanceStatus string `json:"attendance_status"`
}

// Earnings is a babysitter's pay for the sessions scheduled on one day.
type Earnings struct {
	Date      string      `json:"date"`
	Sessions  int         `json:"sessions"`
	Total     float64     `json:"total"`
	Schedules []*Schedule `json:"schedules"`
}
