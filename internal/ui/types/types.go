package types

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// AUTHENTICATION
// =============================================================================
// These types are shared to avoid circular imports between auth ↔ client ↔ handlers

// Role is the user's role as reported by the backend
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// LoginRequest is the body of POST /api/auth/login/
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is the body of POST /api/auth/register/
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
	Role     Role   `json:"role"`
}

// RegisterResponse is returned by a successful registration
type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// User is an account as returned by login, profile and the users list.
// IsActive is a pointer because login and profile responses omit it; a missing value means active.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	IsStaff  bool   `json:"is_staff"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (u User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// UserRef is the nested form of a user inside other records, e.g. job.assigned_to
type UserRef struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// =============================================================================
// JOBS
// =============================================================================

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Job is a service job posted by an admin and handled by an employee.
// AssignedTo is kept raw because the backend sends either a user id or a nested user.
type Job struct {
	ID           int             `json:"id"`
	CustomerName string          `json:"customer_name"`
	PhoneNumber  string          `json:"phone_number"`
	Location     string          `json:"location"`
	Issue        string          `json:"issue"`
	WorkDate     string          `json:"work_date"`
	Priority     Priority        `json:"priority"`
	Status       JobStatus       `json:"status"`
	AssignedTo   json.RawMessage `json:"assigned_to,omitempty"`
	AssignedAt   *string         `json:"assigned_at,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
}

// NewJob is the body of POST /api/jobs/. New jobs are always open.
type NewJob struct {
	CustomerName string    `json:"customer_name"`
	PhoneNumber  string    `json:"phone_number"`
	Location     string    `json:"location"`
	Issue        string    `json:"issue"`
	WorkDate     string    `json:"work_date"`
	Priority     Priority  `json:"priority"`
	Status       JobStatus `json:"status"`
}

// Validate checks the fields the backend requires
func (j NewJob) Validate() error {
	switch {
	case j.CustomerName == "":
		return fmt.Errorf("customer name is required")
	case j.PhoneNumber == "":
		return fmt.Errorf("phone number is required")
	case j.Location == "":
		return fmt.Errorf("location is required")
	case j.Issue == "":
		return fmt.Errorf("issue is required")
	case j.WorkDate == "":
		return fmt.Errorf("work date is required")
	case !j.Priority.Valid():
		return fmt.Errorf("priority must be low, medium or high")
	}
	return nil
}

// =============================================================================
// RENTALS & DEVICES
// =============================================================================

// Rental is a device rented to a customer. SecurityDeposit is a decimal string on the wire.
type Rental struct {
	ID              int          `json:"id"`
	CustomerName    string       `json:"customer_name"`
	PhoneNumber     string       `json:"phone_number"`
	DeviceSerial    string       `json:"device_serial"`
	FromDate        string       `json:"from_date"`
	ToDate          string       `json:"to_date"`
	RentalDays      int          `json:"rental_days"`
	SecurityDeposit json.Number  `json:"security_deposit"`
	Status          RentalStatus `json:"status"`
	CreatedAt       string       `json:"created_at,omitempty"`
}

// NewRental is the body of POST /api/rentals/. The id_proof upload is not supported.
type NewRental struct {
	CustomerName    string `json:"customer_name"`
	PhoneNumber     string `json:"phone_number"`
	DeviceSerial    string `json:"device_serial"`
	FromDate        string `json:"from_date"`
	ToDate          string `json:"to_date"`
	RentalDays      int    `json:"rental_days"`
	SecurityDeposit string `json:"security_deposit"`
}

func (r NewRental) Validate() error {
	switch {
	case r.CustomerName == "":
		return fmt.Errorf("customer name is required")
	case r.PhoneNumber == "":
		return fmt.Errorf("phone number is required")
	case r.DeviceSerial == "":
		return fmt.Errorf("device serial is required")
	case r.FromDate == "" || r.ToDate == "":
		return fmt.Errorf("rental dates are required")
	case r.RentalDays < 1:
		return fmt.Errorf("rental days must be at least 1")
	case r.SecurityDeposit == "":
		return fmt.Errorf("security deposit is required")
	}
	return nil
}

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityRented      Availability = "rented"
	AvailabilityMaintenance Availability = "maintenance"
)

type Device struct {
	ID           int          `json:"id"`
	DeviceName   string       `json:"device_name"`
	SerialNo     string       `json:"serial_no"`
	Model        string       `json:"model"`
	Availability Availability `json:"availability"`
	CreatedAt    *string      `json:"created_at,omitempty"`
}

// NewDevice is the body of POST /api/devices/
type NewDevice struct {
	DeviceName   string       `json:"device_name"`
	SerialNo     string       `json:"serial_no"`
	Model        string       `json:"model"`
	Availability Availability `json:"availability"`
}

func (d NewDevice) Validate() error {
	switch {
	case d.DeviceName == "":
		return fmt.Errorf("device name is required")
	case d.SerialNo == "":
		return fmt.Errorf("serial number is required")
	case d.Model == "":
		return fmt.Errorf("model is required")
	}
	return nil
}

// =============================================================================
// REPORTS
// =============================================================================

// Report is a job completion report. The completion photo upload is not supported.
type Report struct {
	ID              int    `json:"id"`
	Job             int    `json:"job"`
	CompanyName     string `json:"company_name"`
	TimeTaken       string `json:"time_taken"`
	EquipmentUsed   string `json:"equipment_used"`
	WorkDescription string `json:"work_description"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// NewReport is the body of POST /api/reports/
type NewReport struct {
	Job             int    `json:"job"`
	CompanyName     string `json:"company_name"`
	TimeTaken       string `json:"time_taken"`
	EquipmentUsed   string `json:"equipment_used"`
	WorkDescription string `json:"work_description"`
}

func (r NewReport) Validate() error {
	switch {
	case r.Job < 1:
		return fmt.Errorf("please select a job to submit the report for")
	case r.CompanyName == "" || r.TimeTaken == "" || r.EquipmentUsed == "" || r.WorkDescription == "":
		return fmt.Errorf("please fill in all required fields")
	}
	return nil
}

// =============================================================================
// DASHBOARD
// =============================================================================

// DashboardStats is returned by GET /api/dashboard/stats/
type DashboardStats struct {
	Jobs struct {
		Total      int `json:"total"`
		Open       int `json:"open"`
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
	} `json:"jobs"`
	Rentals struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Completed int `json:"completed"`
	} `json:"rentals"`
	Devices struct {
		Total     int `json:"total"`
		Available int `json:"available"`
		Rented    int `json:"rented"`
	} `json:"devices"`
	Users struct {
		Total     int `json:"total"`
		Admins    int `json:"admins"`
		Employees int `json:"employees"`
	} `json:"users"`
}
