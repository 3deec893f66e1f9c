package transport

import "users_manager_backend/platform/patch"

type CreateUserRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	FamilyName string `json:"family_name" validate:"required"`
	Username   string `json:"username" validate:"required,min=1,max=128"`
}

type PasswordResetRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
}

type DeleteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ModifyUserRequest struct {
	UserID            string              `json:"user_id" validate:"required"`
	GivenName         patch.Field[string] `json:"given_name"`
	FamilyName        patch.Field[string] `json:"family_name"`
	Name              patch.Field[string] `json:"name"`
	Nickname          patch.Field[string] `json:"nickname"`
	Picture           patch.Field[string] `json:"picture" validate:"omitempty,url"`
	VerifyEmail       patch.Field[bool]   `json:"verify_email"`
	VerifyPhoneNumber patch.Field[bool]   `json:"verify_phone_number"`
	Password          patch.Field[string] `json:"password" validate:"omitempty,min=8"`
	Username          patch.Field[string] `json:"username" validate:"omitempty,max=128"`
}

type InvitationRequest struct {
	Email          string `json:"email" validate:"required,email"`
	OrganizationID string `json:"organization_id" validate:"required"`
}

type AddRolesRequest struct {
	UserID       string   `json:"user_id" validate:"required"`
	Organization string   `json:"organization" validate:"required"`
	Roles        []string `json:"roles" validate:"required,min=1,dive,required"`
}
