// internal/domain/models/auth.go
package models

import "time"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

// AuthUser is the minimal profile returned with a login and cached in the
// session for the layout chrome.
type AuthUser struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

// AuthData is the payload of a successful login.
type AuthData struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expiresIn"` // seconds; 0 when the server does not say
	User      AuthUser `json:"user"`
}

// UserInfo is the live profile returned by GET /auth/user.
type UserInfo struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employeeId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Role       Role   `json:"role"`
	Active     bool   `json:"active"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// Initials returns the first letters of the first and last name.
func (u UserInfo) Initials() string {
	out := ""
	if r := []rune(u.FirstName); len(r) > 0 {
		out += string(r[0])
	}
	if r := []rune(u.LastName); len(r) > 0 {
		out += string(r[0])
	}
	return out
}

// Session is the console's view of an authenticated administrator: the
// bearer token issued at login and the profile cached alongside it.
// Every store call receives the Session explicitly.
type Session struct {
	Token     string
	User      AuthUser
	ExpiresAt time.Time // informational only; zero when unknown
}

// HasToken reports whether the session carries a bearer credential.
func (s *Session) HasToken() bool {
	return s != nil && s.Token != ""
}
