package model

import "time"

// Role enumerates the access levels recognised by the API.  ADMIN
// accounts manage concerts and see every reservation; USER accounts
// reserve seats and only ever see their own history.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// ValidRole reports whether s is one of the recognised role values.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleUser
}

// User represents an account able to authenticate against the API.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name shown on reservation listings.
//  Email        – unique, normalised to lower case on write.
//  PasswordHash – bcrypt hash; the plain password is never stored.
//  Role         – ADMIN or USER.
//  IsActive     – soft-disable flag for the account.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
