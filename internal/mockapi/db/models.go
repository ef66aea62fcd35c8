package db

import "time"

// User is a mock GitHub account. A non-empty TOTPSecret marks the account as
// enrolled in two-factor auth: authorization requests must then carry a valid
// X-GitHub-OTP code.
type User struct {
	Login        string    `json:"login"`
	PasswordHash []byte    `json:"-"`
	TOTPSecret   string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Authorization is an issued token record as stored by the mock API.
// Scopes are kept comma-joined in a single column.
type Authorization struct {
	ID          int64     `json:"id"`
	UserLogin   string    `json:"user_login"`
	Token       string    `json:"token"`
	Note        string    `json:"note"`
	NoteURL     string    `json:"note_url"`
	Scopes      []string  `json:"scopes"`
	AppName     string    `json:"app_name"`
	AppURL      string    `json:"app_url"`
	AppClientID string    `json:"app_client_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
