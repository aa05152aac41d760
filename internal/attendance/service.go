package attendance

import (
	"context"
	"math"
	"time"

	"attendance/internal/employee"
)

// Service enforces the per-day check-in/check-out state machine against the
// ledger. The authenticated employee is always an explicit parameter.
type Service struct {
	repo Repository
}

// NewService creates a service backed by a repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// TodayStatus reports today's state for one employee.
type TodayStatus struct {
	HasCheckedIn  bool    `json:"hasCheckedIn"`
	HasCheckedOut bool    `json:"hasCheckedOut"`
	Attendance    *Record `json:"attendance"`
}

// CheckIn creates today's row for the employee. Uniqueness is left to the
// storage layer so concurrent attempts cannot both succeed.
func (s *Service) CheckIn(ctx context.Context, emp employee.Employee) (Record, error) {
	now := time.Now()
	rec, err := s.repo.CreateCheckIn(ctx, Record{
		EmployeeID: emp.ID,
		Date:       normalizeDate(now),
		CheckIn:    now,
		Status:     StatusPresent,
	})
	if err != nil {
		return Record{}, err
	}
	rec.Employee = &Summary{Name: emp.Name, EmployeeID: emp.EmployeeID}
	return rec, nil
}

// CheckOut closes today's row, computing total hours. Fails with ErrNoCheckIn
// without a row and ErrAlreadyCheckedOut once check_out is set; the row is
// never mutated again after that.
func (s *Service) CheckOut(ctx context.Context, emp employee.Employee) (Record, error) {
	now := time.Now()
	existing, err := s.repo.FindByDate(ctx, emp.ID, normalizeDate(now))
	if err != nil {
		return Record{}, err
	}
	if existing == nil {
		return Record{}, ErrNoCheckIn
	}
	if existing.CheckOut != nil {
		return Record{}, ErrAlreadyCheckedOut
	}
	rec, err := s.repo.CompleteCheckOut(ctx, existing.ID, now, roundHours(now.Sub(existing.CheckIn)))
	if err != nil {
		return Record{}, err
	}
	rec.Employee = &Summary{Name: emp.Name, EmployeeID: emp.EmployeeID}
	return rec, nil
}

// TodayStatus reports whether the employee has checked in and out today.
// Pure read, no transition.
func (s *Service) TodayStatus(ctx context.Context, emp employee.Employee) (TodayStatus, error) {
	rec, err := s.repo.FindByDate(ctx, emp.ID, normalizeDate(time.Now()))
	if err != nil {
		return TodayStatus{}, err
	}
	return TodayStatus{
		HasCheckedIn:  rec != nil,
		HasCheckedOut: rec != nil && rec.CheckOut != nil,
		Attendance:    rec,
	}, nil
}

// History returns an employee's records, newest first, optionally bounded to
// the inclusive [from, to] date range.
func (s *Service) History(ctx context.Context, employeeID string, from, to *time.Time) ([]Record, error) {
	return s.repo.History(ctx, employeeID, from, to)
}

// normalizeDate truncates a timestamp to the start of its local calendar day,
// the uniqueness key for attendance.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// roundHours converts a duration to hours rounded half-up on the hundredths.
func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
