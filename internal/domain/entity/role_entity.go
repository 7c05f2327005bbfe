package entity

import (
	"errors"
	"strings"
)

// Role represents an authorization role held by an identity
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole accepts exactly the closed set of roles and fails on anything else.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleInstructor:
		return RoleInstructor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrInvalidRole
}

// CoerceLegacyRole maps "instructor" to instructor and every other value to admin.
// Only used when legacy role coercion is switched on.
func CoerceLegacyRole(s string) Role {
	if s == string(RoleInstructor) {
		return RoleInstructor
	}
	return RoleAdmin
}

// Effective treats the empty role of records created before roles existed as student.
func (r Role) Effective() Role {
	if r == "" {
		return RoleStudent
	}
	return r
}
