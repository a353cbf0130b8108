package entity

import (
	"strings"
	"time"
)

type Role int16

const (
	RoleVendor   Role = 1
	RoleCustomer Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleVendor:
		return "vendor"
	case RoleCustomer:
		return "customer"
	default:
		return "unknown"
	}
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Role         Role
	BusinessName string
	IsActive     bool
	IsStaff      bool
	IsAdmin      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

// Normalize title-cases the name fields and lowercases the email
// before the record is written.
func (u *User) Normalize() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FirstName = titleCase(u.FirstName)
	u.LastName = titleCase(u.LastName)
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
