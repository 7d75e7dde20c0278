package models

import "time"

type Child struct {
	ID                         int       `json:"id"`
	FullName                   string    `json:"full_name"`
	Age                        int       `json:"age"`
	Gender                     string    `json:"gender"`
	ParentGuardianName         string    `json:"parent_guardian_name"`
	ParentGuardianPhone        string    `json:"parent_guardian_phone"`
	ParentGuardianEmail        string    `json:"parent_guardian_email"`
	ParentGuardianRelationship string    `json:"parent_guardian_relationship"`
	SpecialNeeds               string    `json:"special_needs"`
	DurationOfStay             string    `json:"Duration_of_stay"`
	CreatedAt                  time.Time `json:"created_at"`
}

type RegisterChildRequest struct {
	FullName                   string  `json:"full_name"`
	Age                        FlexInt `json:"age"`
	Gender                     string  `json:"gender"`
	ParentGuardianName         string  `json:"parent_guardian_name"`
	ParentGuardianPhone        string  `json:"parent_guardian_phone"`
	ParentGuardianEmail        string  `json:"parent_guardian_email"`
	ParentGuardianRelationship string  `json:"parent_guardian_relationship"`
	SpecialNeeds               string  `json:"special_needs"`
	DurationOfStay             string  `json:"Duration_of_stay"`
}

// UpdateChildRequest is a partial update: nil fields keep the stored value.
type UpdateChildRequest struct {
	FullName                   *string  `json:"full_name"`
	Age                        *FlexInt `json:"age"`
	Gender                     *string  `json:"gender"`
	ParentGuardianName         *string  `json:"parent_guardian_name"`
	ParentGuardianPhone        *string  `json:"parent_guardian_phone"`
	ParentGuardianEmail        *string  `json:"parent_guardian_email"`
	ParentGuardianRelationship *string  `json:"parent_guardian_relationship"`
	SpecialNeeds               *string  `json:"special_needs"`
	DurationOfStay             *string  `json:"Duration_of_stay"`
}
