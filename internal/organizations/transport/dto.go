package transport

import "users_manager_backend/platform/patch"

type GetOrganizationRequest struct {
	Name string `form:"name" json:"name"`
}

type ListOrganizationsRequest struct {
	TenantDomain string `form:"tenant_domain" json:"tenant_domain"`
}

type ListMembersRequest struct {
	OrganizationID string `form:"organization_id" json:"organization_id" validate:"required"`
}

type CreateOrganizationRequest struct {
	Name            string `json:"name" validate:"required,max=50"`
	DisplayName     string `json:"display_name" validate:"required,max=255"`
	PrimaryColor    string `json:"primary_color" validate:"omitempty,hexcolor"`
	BackgroundColor string `json:"background_color" validate:"omitempty,hexcolor"`
}

type OrganizationIdentifierRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type ModifyOrganizationRequest struct {
	Identifier      string              `json:"identifier" validate:"required"`
	Name            patch.Field[string] `json:"name" validate:"omitempty,max=50"`
	DisplayName     patch.Field[string] `json:"display_name" validate:"omitempty,max=255"`
	LogoURL         patch.Field[string] `json:"logo_url" validate:"omitempty,url"`
	PrimaryColor    patch.Field[string] `json:"primary_color" validate:"omitempty,hexcolor"`
	BackgroundColor patch.Field[string] `json:"background_color" validate:"omitempty,hexcolor"`
}

type ChangeClientTypeRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	AppType  string `json:"app_type" validate:"required,oneof=native spa regular_web non_interactive"`
}

type RemoveUserRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	OrganizationID string `json:"organization_id" validate:"required"`
}
