// Package domain holds the locally stored organization directory:
// organizations and the employees that belong to them.
package domain

import (
	"strings"
	"time"

	"users_manager_backend/platform/apperr"
)

// DateLayout is the wire and storage format of birthdates.
const DateLayout = "2006-01-02"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// DefaultRole is assigned when an employee is created without a role.
const DefaultRole = RoleEmployee

type EmploymentStatus string

const (
	EmploymentFullTime   EmploymentStatus = "full-time"
	EmploymentPartTime   EmploymentStatus = "part-time"
	EmploymentTerminated EmploymentStatus = "terminated"
)

// ParseRole accepts only the known roles.
func ParseRole(value string) (Role, error) {
	switch r := Role(value); r {
	case RoleEmployee, RoleManager:
		return r, nil
	default:
		return "", apperr.Validation("invalid role").WithDetails(map[string]any{
			"role":    value,
			"allowed": []Role{RoleEmployee, RoleManager},
		})
	}
}

// ParseEmploymentStatus accepts only the known employment statuses.
func ParseEmploymentStatus(value string) (EmploymentStatus, error) {
	switch s := EmploymentStatus(value); s {
	case EmploymentFullTime, EmploymentPartTime, EmploymentTerminated:
		return s, nil
	default:
		return "", apperr.Validation("invalid employment status").WithDetails(map[string]any{
			"employment_status": value,
			"allowed":           []EmploymentStatus{EmploymentFullTime, EmploymentPartTime, EmploymentTerminated},
		})
	}
}

// ParseBirthdate parses a YYYY-MM-DD date that is not in the future.
func ParseBirthdate(value string, now time.Time) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperr.Validation("invalid birthdate").WithDetails(map[string]string{"birthdate": DateLayout})
	}
	if d.After(now) {
		return time.Time{}, apperr.Validation("birthdate is in the future")
	}
	return d, nil
}

type Organization struct {
	ID        int64
	Name      string
	Employees []Employee
}

type Employee struct {
	ID               int64
	Name             string
	Surname          string
	Birthdate        *time.Time
	Role             Role
	EmploymentStatus EmploymentStatus
	OrganizationID   int64
}

// NewEmployee builds a valid employee. An empty role uses DefaultRole.
func NewEmployee(organizationID int64, name, surname, role, status string) (Employee, error) {
	e := Employee{OrganizationID: organizationID, Role: DefaultRole}
	if err := e.SetName(name, surname); err != nil {
		return Employee{}, err
	}
	if role != "" {
		if err := e.SetRole(role); err != nil {
			return Employee{}, err
		}
	}
	if err := e.SetEmploymentStatus(status); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// SetName replaces name and surname; both must be non-blank.
func (e *Employee) SetName(name, surname string) error {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	if name == "" || surname == "" {
		return apperr.Validation("name and surname are required")
	}
	e.Name = name
	e.Surname = surname
	return nil
}

func (e *Employee) SetRole(value string) error {
	r, err := ParseRole(value)
	if err != nil {
		return err
	}
	e.Role = r
	return nil
}

func (e *Employee) SetEmploymentStatus(value string) error {
	s, err := ParseEmploymentStatus(value)
	if err != nil {
		return err
	}
	e.EmploymentStatus = s
	return nil
}
