package domain

import "strings"

// Role distinguishes clients (who submit queries) from support staff
// (who triage them).
type Role string

const (
	RoleClient  Role = "client"
	RoleSupport Role = "support"
)

// ParseRole normalizes a stored role value.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "client":
		return RoleClient, true
	case "support":
		return RoleSupport, true
	default:
		return "", false
	}
}

// User is the domain model for an account. Accounts are provisioned out of
// band; this service only authenticates them and updates profiles.
type User struct {
	ID           int64
	Username     string
	Email        string
	MobileNumber string
	PasswordHash string
	Role         Role
}
