// Package model defines the domain types shared by the identity and
// simulation services: User, PublicUser, GameData and Cattle.
package model

import (
	"time"
)

// User roles. Exactly one admin account exists after bootstrap.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an identity plus ledger row. Points is the sole currency and is
// only ever mutated through the identity service, never below zero.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Password  string     `json:"password"` // Stored as an opaque plaintext string; see DESIGN.md.
	Role      string     `json:"role"`
	Points    int        `json:"points"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public returns the credential-stripped subset of the user that is safe
// to hand to callers and to persist as the session record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Points:    u.Points,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// PublicUser is the disposable session record: a pointer to the logged-in
// user's public profile. It is never authoritative for mutable fields like
// Points; readers must re-resolve against the user table.
type PublicUser struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	Points    int        `json:"points"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// IsAdmin returns true if the session user has the admin role.
func (u *PublicUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
