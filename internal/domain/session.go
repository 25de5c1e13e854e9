package domain

import "errors"

// ErrWrongCredentials is returned when either the email or the password is wrong.
var ErrWrongCredentials = errors.New("wrong credentials")

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSupport Role = "support"
)

// Session token required to make service calls.
type Session struct {
	Token string
	Role  Role
}
