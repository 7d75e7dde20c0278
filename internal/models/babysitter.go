package models

import "time"

type Babysitter struct {
	ID                    int       `json:"id"`
	Fullname              string    `json:"fullname"`
	Age                   int       `json:"age"`
	Gender                string    `json:"gender"`
	NIN                   string    `json:"NIN"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	PasswordHash          string    `json:"-"`
	NextOfKinName         string    `json:"next_of_kin_name"`
	NextOfKinPhone        string    `json:"next_of_kin_phone"`
	NextOfKinRelationship string    `json:"next_of_kin_relationship"`
	CreatedAt             time.Time `json:"created_at"`
}

type RegisterBabysitterRequest struct {
	Fullname              string  `json:"fullname"`
	Age                   FlexInt `json:"age"`
	Gender                string  `json:"gender"`
	NIN                   string  `json:"NIN"`
	Email                 string  `json:"email"`
	Phone                 string  `json:"phone"`
	Password              string  `json:"password"`
	NextOfKinName         string  `json:"next_of_kin_name"`
	NextOfKinPhone        string  `json:"next_of_kin_phone"`
	NextOfKinRelationship string  `json:"next_of_kin_relationship"`
}

// UpdateBabysitterRequest is a partial update: nil fields keep the stored value.
type UpdateBabysitterRequest struct {
	Fullname              *string  `json:"fullname"`
	Age                   *FlexInt `json:"age"`
	Gender                *string  `json:"gender"`
	NIN                   *string  `json:"NIN"`
	Email                 *string  `json:"email"`
	Phone                 *string  `json:"phone"`
	Password              *string  `json:"password"`
	NextOfKinName         *string  `json:"next_of_kin_name"`
	NextOfKinPhone        *string  `json:"next_of_kin_phone"`
	NextOfKinRelationship *string  `json:"next_of_kin_relationship"`
}
