package models

import "time"

type Incident struct {
	ID             int            `json:"id"`
	ChildID        int            `json:"child_id"`
	BabysitterID   int            `json:"babysitter_id"`
	IncidentDate   time.Time      `json:"incident_date"`
	IncidentType   IncidentType   `json:"incident_type"`
	Description    string         `json:"description"`
	Status         IncidentStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	ChildName      string         `json:"child_name,omitempty"`
	BabysitterName string         `json:"babysitter_name,omitempty"`
}

type CreateIncidentRequest struct {
	ChildID      FlexInt `json:"child_id"`
	BabysitterID FlexInt `json:"babysitter_id"`
	IncidentDate string  `json:"incident_date"`
	IncidentType string  `json:"incident_type"`
	Description  string  `json:"description"`
}

type IncidentStatusRequest struct {
	Status string `json:"status"`
}
