package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code"`
}

// AuthResponse is returned by both login endpoints. User is a *Manager or
// a *Babysitter; the password hash is never serialized.
type AuthResponse struct {
	Token string      `json:"token"`
	Role  Role        `json:"role"`
	User  interface{} `json:"user"`
}

type TOTPSetupResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

type TOTPCodeRequest struct {
	Code string `json:"code"`
}
