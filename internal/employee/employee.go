package employee

import (
	"errors"
	"time"
)

// Employee is a registered employee. The password hash never leaves the
// repository layer.
type Employee struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Update carries the mutable profile fields. Identifier and password are
// immutable after registration.
type Update struct {
	Name       string
	Email      string
	Department string
	Position   string
}

var (
	// ErrDuplicate means the employee code or email is already taken.
	ErrDuplicate = errors.New("employee already exists")
	// ErrNotFound means no employee matches the given id.
	ErrNotFound = errors.New("employee not found")
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
