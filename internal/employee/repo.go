package employee

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository persists employee records.
type Repository interface {
	Create(ctx context.Context, e Employee, passwordHash string) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, string, error)
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, id string, upd Update) (Employee, error)
	Delete(ctx context.Context, id string) error
}

// PostgresRepository persists employees in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const employeeCols = `id, employee_id, name, email, department, position, created_at`

// Create inserts a new employee. The unique indexes on employee_id and email
// back up the service-level duplicate pre-check.
func (r *PostgresRepository) Create(ctx context.Context, e Employee, passwordHash string) (Employee, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (id, employee_id, name, email, password, department, position)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, e.ID, e.EmployeeID, e.Name, e.Email, passwordHash, e.Department, e.Position)
	if err := row.Scan(&e.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return Employee{}, ErrDuplicate
		}
		return Employee{}, err
	}
	return e, nil
}

// GetByID returns a single employee by row id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+employeeCols+` FROM employees WHERE id = $1
	`, id)
	return scanEmployee(row)
}

// GetByEmail returns the employee plus the stored password hash for login.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (Employee, string, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+employeeCols+`, password FROM employees WHERE email = $1
	`, email)
	var e Employee
	var hash string
	if err := row.Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Email, &e.Department, &e.Position, &e.CreatedAt, &hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Employee{}, "", ErrNotFound
		}
		return Employee{}, "", err
	}
	return e, hash, nil
}

// List returns all employees ordered by employee code.
func (r *PostgresRepository) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+employeeCols+` FROM employees ORDER BY employee_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Email, &e.Department, &e.Position, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update mutates the profile fields and returns the fresh row.
func (r *PostgresRepository) Update(ctx context.Context, id string, upd Update) (Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE employees
		SET name = $2, email = $3, department = $4, position = $5
		WHERE id = $1
		RETURNING `+employeeCols+`
	`, id, upd.Name, upd.Email, upd.Department, upd.Position)
	e, err := scanEmployee(row)
	if err != nil && isUniqueViolation(err) {
		return Employee{}, ErrDuplicate
	}
	return e, err
}

// Delete removes an employee; attendance rows cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEmployee(row *sql.Row) (Employee, error) {
	var e Employee
	if err := row.Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Email, &e.Department, &e.Position, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
