package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
	RoleSeller   Role = "Seller"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleSeller:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInactive UserStatus = "Inactive"
	UserBanned   UserStatus = "Banned"
	UserPending  UserStatus = "Pending"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserInactive, UserBanned, UserPending:
		return true
	}
	return false
}

// User is the persisted account record. PasswordHash is only populated on the
// credentials path; every other snapshot leaves it empty.
type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash,omitempty"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	JoinDate     time.Time  `json:"joinDate"`
	LastLogin    *time.Time `json:"lastLogin"`
	Orders       int        `json:"orders"`
	Verified     bool       `json:"verified"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

func (u User) ActiveAdmin() bool {
	return u.Role == RoleAdmin && u.Status == UserActive
}

// Sanitized returns the snapshot without its password hash.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Principal is the authenticated admin bound to a request.
type Principal struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func PrincipalOf(u User) Principal {
	return Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
