package model

import "time"

// Role grants access levels to order operations.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
	RoleCustomer Role = "Customer"
	RoleCompany  Role = "Company"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer, RoleCompany:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to back-office users.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User represents a registered account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Requester identifies the caller of a query.
type Requester struct {
	UserID int64
	Role   Role
}
