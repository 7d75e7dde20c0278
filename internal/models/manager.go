package models

import "time"

type Manager struct {
	ID           int       `json:"id"`
	Fullname     string    `json:"fullname"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	NIN          string    `json:"NIN"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	TOTPSecret   string    `json:"-"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterManagerRequest struct {
	Fullname string  `json:"fullname"`
	Age      FlexInt `json:"age"`
	Gender   string  `json:"gender"`
	NIN      string  `json:"NIN"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Password string  `json:"password"`
}
