package transport

import (
	"users_manager_backend/internal/directory/domain"
	"users_manager_backend/platform/patch"
)

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateEmployeeRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	Surname          string `json:"surname" validate:"required,max=255"`
	Birthdate        string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Role             string `json:"role" validate:"omitempty,oneof=employee manager"`
	EmploymentStatus string `json:"employment_status" validate:"required,oneof=full-time part-time terminated"`
}

type UpdateEmployeeRequest struct {
	Name             patch.Field[string] `json:"name" validate:"omitempty,max=255"`
	Surname          patch.Field[string] `json:"surname" validate:"omitempty,max=255"`
	Birthdate        patch.Field[string] `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Role             patch.Field[string] `json:"role"`
	EmploymentStatus patch.Field[string] `json:"employment_status"`
}

type EmployeeResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Surname          string  `json:"surname"`
	Birthdate        *string `json:"birthdate"`
	Role             string  `json:"role"`
	EmploymentStatus string  `json:"employment_status"`
	OrganizationID   int64   `json:"organization_id"`
}

type OrganizationResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Employees []EmployeeResponse `json:"employees"`
}

func ToEmployeeResponse(e domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		Name:             e.Name,
		Surname:          e.Surname,
		Role:             string(e.Role),
		EmploymentStatus: string(e.EmploymentStatus),
		OrganizationID:   e.OrganizationID,
	}
	if e.Birthdate != nil {
		d := e.Birthdate.Format(domain.DateLayout)
		resp.Birthdate = &d
	}
	return resp
}

func ToOrganizationResponse(org domain.Organization) OrganizationResponse {
	employees := make([]EmployeeResponse, 0, len(org.Employees))
	for _, e := range org.Employees {
		employees = append(employees, ToEmployeeResponse(e))
	}
	return OrganizationResponse{ID: org.ID, Name: org.Name, Employees: employees}
}
