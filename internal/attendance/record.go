package attendance

import (
	"errors"
	"time"
)

// Attendance statuses.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusPartial = "partial"
)

// Record is one employee's attendance row for one calendar day.
type Record struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Date       time.Time  `json:"date"`
	CheckIn    time.Time  `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut,omitempty"`
	Status     string     `json:"status"`
	TotalHours *float64   `json:"totalHours,omitempty"`
	Employee   *Summary   `json:"employee,omitempty"`
}

// Summary is the employee name and code joined into a record on reads.
type Summary struct {
	Name       string `json:"name"`
	EmployeeID string `json:"employeeId"`
}

var (
	// ErrAlreadyCheckedIn means a row for (employee, today) already exists.
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	// ErrAlreadyCheckedOut means today's row already has a check-out.
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	// ErrNoCheckIn means there is no row for (employee, today).
	ErrNoCheckIn = errors.New("no check-in record found for today")
)
