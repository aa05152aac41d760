package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendance/internal/attendance"
	"attendance/internal/auth"
	"attendance/internal/config"
	"attendance/internal/employee"
)

const dateLayout = "2006-01-02"

// Handler exposes the API surface over gin.
type Handler struct {
	cfg        config.App
	employees  *employee.Service
	attendance *attendance.Service
}

// New creates a handler.
func New(cfg config.App, employees *employee.Service, att *attendance.Service) *Handler {
	return &Handler{cfg: cfg, employees: employees, attendance: att}
}

// Root returns the service banner.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Employee Attendance Management API"})
}

// ---------- Auth ----------

type registerRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Department string `json:"department" binding:"required"`
	Position   string `json:"position" binding:"required"`
}

// Register creates an employee account.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emp, err := h.employees.Register(c.Request.Context(), employee.Registration{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		if errors.Is(err, employee.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "employee already exists"})
			return
		}
		h.serverError(c, "register", err)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "employee registered successfully", "employee": emp})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emp, err := h.employees.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, employee.ErrInvalidCredentials) {
			loginFailures.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}
		h.serverError(c, "login", err)
		return
	}

	token, _, err := auth.Issue(emp.ID, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.TokenTTL)
	if err != nil {
		h.serverError(c, "token issue", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "employee": emp})
}

// ---------- Attendance ----------

// CheckIn records today's check-in for the authenticated employee.
func (h *Handler) CheckIn(c *gin.Context) {
	emp, ok := auth.CurrentEmployee(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	rec, err := h.attendance.CheckIn(c.Request.Context(), emp)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "already checked in today"})
			return
		}
		h.serverError(c, "checkin", err)
		return
	}

	checkinsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "checked in successfully", "attendance": rec})
}

// CheckOut closes today's record for the authenticated employee.
func (h *Handler) CheckOut(c *gin.Context) {
	emp, ok := auth.CurrentEmployee(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	rec, err := h.attendance.CheckOut(c.Request.Context(), emp)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNoCheckIn):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no check-in record found for today"})
		case errors.Is(err, attendance.ErrAlreadyCheckedOut):
			c.JSON(http.StatusBadRequest, gin.H{"error": "already checked out today"})
		default:
			h.serverError(c, "checkout", err)
		}
		return
	}

	checkoutsTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "checked out successfully", "attendance": rec})
}

// TodayStatus reports whether today's record exists and is closed.
func (h *Handler) TodayStatus(c *gin.Context) {
	emp, ok := auth.CurrentEmployee(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	status, err := h.attendance.TodayStatus(c.Request.Context(), emp)
	if err != nil {
		h.serverError(c, "today status", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// History lists an employee's records, optionally bounded to
// startDate..endDate (inclusive, YYYY-MM-DD).
func (h *Handler) History(c *gin.Context) {
	employeeID := c.Param("employeeId")

	var from, to *time.Time
	startStr, endStr := c.Query("startDate"), c.Query("endDate")
	if startStr != "" && endStr != "" {
		start, err := time.ParseInLocation(dateLayout, startStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate, want YYYY-MM-DD"})
			return
		}
		end, err := time.ParseInLocation(dateLayout, endStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate, want YYYY-MM-DD"})
			return
		}
		from, to = &start, &end
	}

	records, err := h.attendance.History(c.Request.Context(), employeeID, from, to)
	if err != nil {
		h.serverError(c, "history", err)
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	c.JSON(http.StatusOK, records)
}

// ---------- Employee directory ----------

// ListEmployees returns every employee, hashes excluded.
func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.employees.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "list employees", err)
		return
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	c.JSON(http.StatusOK, employees)
}

// GetEmployee returns one employee by id.
func (h *Handler) GetEmployee(c *gin.Context) {
	emp, err := h.employees.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		h.serverError(c, "get employee", err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

type updateEmployeeRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required"`
	Position   string `json:"position" binding:"required"`
}

// UpdateEmployee mutates the profile fields only.
func (h *Handler) UpdateEmployee(c *gin.Context) {
	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emp, err := h.employees.Update(c.Request.Context(), c.Param("id"), employee.Update{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		case errors.Is(err, employee.ErrDuplicate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
		default:
			h.serverError(c, "update employee", err)
		}
		return
	}
	c.JSON(http.StatusOK, emp)
}

// DeleteEmployee removes an employee by id.
func (h *Handler) DeleteEmployee(c *gin.Context) {
	if err := h.employees.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		h.serverError(c, "delete employee", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "employee deleted successfully"})
}

// serverError logs the real failure and returns a generic body.
func (h *Handler) serverError(c *gin.Context, op string, err error) {
	log.Printf("%s failed: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}
