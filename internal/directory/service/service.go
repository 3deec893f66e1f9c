// Package service implements the local organization directory.
package service

import (
	"context"
	"time"

	"users_manager_backend/internal/directory/domain"
	"users_manager_backend/platform/apperr"
	"users_manager_backend/platform/logger"
	"users_manager_backend/platform/patch"
)

type Repository interface {
	CreateOrganization(ctx context.Context, name string) (domain.Organization, error)
	GetOrganization(ctx context.Context, id int64) (domain.Organization, error)
	DeleteOrganization(ctx context.Context, id int64) error
	ListEmployees(ctx context.Context, organizationID int64) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, e domain.Employee) (domain.Employee, error)
	GetEmployee(ctx context.Context, id int64) (domain.Employee, error)
	UpdateEmployee(ctx context.Context, e domain.Employee) (domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// NewEmployee is the input for adding an employee to an organization.
type NewEmployee struct {
	Name             string
	Surname          string
	Birthdate        string
	Role             string
	EmploymentStatus string
}

// EmployeePatch lists the employee fields that may change.
// Birthdate may be set to null; the other fields may not.
type EmployeePatch struct {
	Name             patch.Field[string]
	Surname          patch.Field[string]
	Birthdate        patch.Field[string]
	Role             patch.Field[string]
	EmploymentStatus patch.Field[string]
}

type Service struct {
	repo Repository
	log  *logger.Logger
	now  func() time.Time
}

func New(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

func (s *Service) CreateOrganization(ctx context.Context, name string) (domain.Organization, error) {
	org, err := s.repo.CreateOrganization(ctx, name)
	if err != nil {
		return domain.Organization{}, s.logged(ctx, "create_organization", err)
	}
	org.Employees = []domain.Employee{}
	return org, nil
}

// GetOrganization returns the organization with its employees.
func (s *Service) GetOrganization(ctx context.Context, id int64) (domain.Organization, error) {
	org, err := s.repo.GetOrganization(ctx, id)
	if err != nil {
		return domain.Organization{}, s.logged(ctx, "get_organization", err)
	}
	employees, err := s.repo.ListEmployees(ctx, id)
	if err != nil {
		return domain.Organization{}, s.logged(ctx, "list_employees", err)
	}
	org.Employees = employees
	return org, nil
}

func (s *Service) DeleteOrganization(ctx context.Context, id int64) error {
	return s.logged(ctx, "delete_organization", s.repo.DeleteOrganization(ctx, id))
}

// AddEmployee validates the input before anything is written.
func (s *Service) AddEmployee(ctx context.Context, organizationID int64, in NewEmployee) (domain.Employee, error) {
	e, err := domain.NewEmployee(organizationID, in.Name, in.Surname, in.Role, in.EmploymentStatus)
	if err != nil {
		return domain.Employee{}, err
	}
	if in.Birthdate != "" {
		d, err := domain.ParseBirthdate(in.Birthdate, s.now())
		if err != nil {
			return domain.Employee{}, err
		}
		e.Birthdate = &d
	}

	created, err := s.repo.CreateEmployee(ctx, e)
	if err != nil {
		return domain.Employee{}, s.logged(ctx, "create_employee", err)
	}
	return created, nil
}

// UpdateEmployee applies the set fields of p. Values are validated before
// the employee is loaded.
func (s *Service) UpdateEmployee(ctx context.Context, id int64, p EmployeePatch) (domain.Employee, error) {
	if !p.Name.IsSet() && !p.Surname.IsSet() && !p.Birthdate.IsSet() && !p.Role.IsSet() && !p.EmploymentStatus.IsSet() {
		return domain.Employee{}, apperr.Validation("no fields to update")
	}
	if p.Name.IsNull() || p.Surname.IsNull() || p.Role.IsNull() || p.EmploymentStatus.IsNull() {
		return domain.Employee{}, apperr.Validation("only birthdate can be cleared")
	}

	var staged domain.Employee
	if v, ok := p.Role.Get(); ok {
		if err := staged.SetRole(v); err != nil {
			return domain.Employee{}, err
		}
	}
	if v, ok := p.EmploymentStatus.Get(); ok {
		if err := staged.SetEmploymentStatus(v); err != nil {
			return domain.Employee{}, err
		}
	}
	var birthdate *time.Time
	if v, ok := p.Birthdate.Get(); ok {
		d, err := domain.ParseBirthdate(v, s.now())
		if err != nil {
			return domain.Employee{}, err
		}
		birthdate = &d
	}

	e, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return domain.Employee{}, s.logged(ctx, "get_employee", err)
	}

	name, surname := e.Name, e.Surname
	if v, ok := p.Name.Get(); ok {
		name = v
	}
	if v, ok := p.Surname.Get(); ok {
		surname = v
	}
	if err := e.SetName(name, surname); err != nil {
		return domain.Employee{}, err
	}
	if p.Role.IsSet() {
		e.Role = staged.Role
	}
	if p.EmploymentStatus.IsSet() {
		e.EmploymentStatus = staged.EmploymentStatus
	}
	if p.Birthdate.IsSet() {
		e.Birthdate = birthdate
	}

	updated, err := s.repo.UpdateEmployee(ctx, e)
	if err != nil {
		return domain.Employee{}, s.logged(ctx, "update_employee", err)
	}
	return updated, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	return s.logged(ctx, "delete_employee", s.repo.DeleteEmployee(ctx, id))
}

// logged records unexpected database failures and returns err unchanged.
func (s *Service) logged(ctx context.Context, op string, err error) error {
	if err != nil && s.log != nil && apperr.Is(err, apperr.KindInternal) {
		s.log.WithContext(ctx).DatabaseError(op, err)
	}
	return err
}
