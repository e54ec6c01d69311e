package domain

import "time"

// User is a fleet driver or an administrator. Code is the login
// identifier handed out by the fleet manager (e.g. "MOTO001").
type User struct {
	ID           int32     `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	Active       bool      `json:"active"`
	CreatedOn    time.Time `json:"created_on"`
}
