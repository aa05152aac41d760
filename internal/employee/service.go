package employee

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Registration carries the fields required to create an employee.
type Registration struct {
	EmployeeID string
	Name       string
	Email      string
	Password   string
	Department string
	Position   string
}

// Service implements the employee directory: registration, login
// verification and CRUD over the directory listing.
type Service struct {
	repo Repository
}

// NewService creates a service backed by a repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register hashes the password and creates the employee. Fails with
// ErrDuplicate when the employee code or email is taken.
func (s *Service) Register(ctx context.Context, reg Registration) (Employee, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcryptCost)
	if err != nil {
		return Employee{}, err
	}
	return s.repo.Create(ctx, Employee{
		EmployeeID: reg.EmployeeID,
		Name:       reg.Name,
		Email:      reg.Email,
		Department: reg.Department,
		Position:   reg.Position,
	}, string(hash))
}

// Authenticate verifies email+password. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Employee, error) {
	e, hash, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Employee{}, ErrInvalidCredentials
		}
		return Employee{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return Employee{}, ErrInvalidCredentials
	}
	return e, nil
}

// Get returns one employee by row id.
func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all employees.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.repo.List(ctx)
}

// Update mutates name/email/department/position.
func (s *Service) Update(ctx context.Context, id string, upd Update) (Employee, error) {
	return s.repo.Update(ctx, id, upd)
}

// Delete removes an employee by row id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
