package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository persists attendance rows.
type Repository interface {
	CreateCheckIn(ctx context.Context, rec Record) (Record, error)
	FindByDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)
	CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (Record, error)
	History(ctx context.Context, employeeID string, from, to *time.Time) ([]Record, error)
}

// PostgresRepository persists attendance data in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateCheckIn inserts today's row. The unique index on (employee_id, date)
// makes this atomic: of two concurrent check-ins exactly one insert wins and
// the loser sees ErrAlreadyCheckedIn.
func (r *PostgresRepository) CreateCheckIn(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance_records (id, employee_id, date, check_in, status)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id
	`, rec.ID, rec.EmployeeID, rec.Date, rec.CheckIn, rec.Status)
	if err := row.Scan(&rec.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrAlreadyCheckedIn
		}
		return Record{}, err
	}
	return rec, nil
}

// FindByDate returns the row for (employee, date), nil when absent.
func (r *PostgresRepository) FindByDate(ctx context.Context, employeeID string, date time.Time) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, employee_id, date, check_in, check_out, status, total_hours
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
	`, employeeID, date)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.TotalHours); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// CompleteCheckOut sets check_out and total_hours exactly once. The
// check_out IS NULL guard keeps a lost race from overwriting the first
// check-out.
func (r *PostgresRepository) CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE attendance_records
		SET check_out = $2, total_hours = $3
		WHERE id = $1 AND check_out IS NULL
		RETURNING id, employee_id, date, check_in, check_out, status, total_hours
	`, id, checkOut, totalHours)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.TotalHours); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrAlreadyCheckedOut
		}
		return Record{}, err
	}
	return rec, nil
}

// History returns the employee's rows, optionally bounded to the closed
// interval [from, to], newest date first, each row carrying the joined
// employee name and code.
func (r *PostgresRepository) History(ctx context.Context, employeeID string, from, to *time.Time) ([]Record, error) {
	query := `
		SELECT a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status, a.total_hours,
		       e.name, e.employee_id
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1`
	args := []any{employeeID}
	if from != nil && to != nil {
		query += ` AND a.date >= $2 AND a.date <= $3`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY a.date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Record
	for rows.Next() {
		var rec Record
		var sum Summary
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.TotalHours,
			&sum.Name, &sum.EmployeeID); err != nil {
			return nil, err
		}
		rec.Employee = &sum
		res = append(res, rec)
	}
	return res, rows.Err()
}
