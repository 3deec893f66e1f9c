// Package service implements organization management against the identity
// provider. Every operation returns the provider's raw response body.
package service

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"users_manager_backend/internal/provider"
	"users_manager_backend/platform/apperr"
	"users_manager_backend/platform/config"
	"users_manager_backend/platform/patch"
)

const (
	DefaultPrimaryColor        = "#eb4034"
	DefaultPageBackgroundColor = "#e0b9b6"
)

// AppTypes are the client application types accepted by the provider.
var AppTypes = []string{"native", "spa", "regular_web", "non_interactive"}

// Provider sends management API calls.
type Provider interface {
	Body(ctx context.Context, call provider.Call) (string, error)
}

// Branding holds organization colours. Empty values use the defaults.
type Branding struct {
	PrimaryColor        string
	PageBackgroundColor string
}

// OrganizationPatch lists the fields a modify request may change.
type OrganizationPatch struct {
	Name            patch.Field[string]
	DisplayName     patch.Field[string]
	LogoURL         patch.Field[string]
	PrimaryColor    patch.Field[string]
	BackgroundColor patch.Field[string]
}

// Payload builds the PATCH body from the fields holding a value. Null
// fields are left out. Empty branding strings count as unset, and branding
// and branding.colors only appear when one of their fields remains.
func (p OrganizationPatch) Payload() patch.Object {
	colors := patch.Object{}
	patch.PutNonEmpty(colors, "primary", p.PrimaryColor)
	patch.PutNonEmpty(colors, "page_background", p.BackgroundColor)

	branding := patch.Object{}
	patch.PutNonEmpty(branding, "logo_url", p.LogoURL)
	branding.PutObject("colors", colors)

	out := patch.Object{}
	patch.Put(out, "name", p.Name)
	patch.Put(out, "display_name", p.DisplayName)
	out.PutObject("branding", branding)
	return out
}

type Service struct {
	provider Provider
	cfg      config.OrganizationsConfig
}

func New(p Provider, cfg config.OrganizationsConfig) *Service {
	return &Service{provider: p, cfg: cfg}
}

// Create registers a new organization with the database connection enabled.
func (s *Service) Create(ctx context.Context, name, displayName string, branding Branding) (string, error) {
	primary := branding.PrimaryColor
	if primary == "" {
		primary = DefaultPrimaryColor
	}
	background := branding.PageBackgroundColor
	if background == "" {
		background = DefaultPageBackgroundColor
	}

	payload := map[string]any{
		"name":         name,
		"display_name": displayName,
		"branding": map[string]any{
			"colors": map[string]any{
				"primary":         primary,
				"page_background": background,
			},
		},
		"metadata": map[string]any{},
		"enabled_connections": []map[string]any{{
			"connection_id":              s.cfg.GetDatabaseConnectionID(),
			"assign_membership_on_login": true,
			"show_as_button":             true,
			"is_signup_enabled":          true,
		}},
	}

	return s.provider.Body(ctx, provider.Call{
		Method:  http.MethodPost,
		Path:    provider.APIPath("organizations"),
		Payload: payload,
	})
}

// GetByName looks an organization up by name. An empty name uses the
// configured organization identifier.
func (s *Service) GetByName(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		name = s.cfg.GetOrganizationIdentifier()
	}
	return s.provider.Body(ctx, provider.Call{
		Method: http.MethodGet,
		Path:   provider.APIPath("organizations", "name", name),
	})
}

func (s *Service) DeleteByIdentifier(ctx context.Context, identifier string) (string, error) {
	return s.provider.Body(ctx, provider.Call{
		Method: http.MethodDelete,
		Path:   provider.APIPath("organizations", identifier),
	})
}

// Modify sends only the fields of p holding a value. A patch left empty,
// including one made only of nulls, is rejected without calling the provider.
func (s *Service) Modify(ctx context.Context, identifier string, p OrganizationPatch) (string, error) {
	payload := p.Payload()
	if payload.Empty() {
		return "", apperr.Validation("no fields to update")
	}
	return s.provider.Body(ctx, provider.Call{
		Method:  http.MethodPatch,
		Path:    provider.APIPath("organizations", identifier),
		Payload: payload,
	})
}

func (s *Service) ChangeClientType(ctx context.Context, clientID, appType string) (string, error) {
	if !slices.Contains(AppTypes, appType) {
		return "", apperr.Validation("unsupported app_type").WithDetails(map[string]any{"allowed": AppTypes})
	}
	return s.provider.Body(ctx, provider.Call{
		Method:  http.MethodPatch,
		Path:    provider.APIPath("clients", clientID),
		Payload: map[string]any{"app_type": appType},
	})
}

// List returns the organizations of tenant. An empty tenant uses the configured one.
func (s *Service) List(ctx context.Context, tenant string) (string, error) {
	return s.provider.Body(ctx, provider.Call{
		Method: http.MethodGet,
		Tenant: tenant,
		Path:   provider.APIPath("organizations"),
	})
}

// RemoveUser reads the membership resource of userID in organizationID.
// TODO: switch to DELETE /organizations/{id}/members with {"members": [userID]}
// once callers are ready for the membership to actually be removed.
func (s *Service) RemoveUser(ctx context.Context, userID, organizationID string) (string, error) {
	return s.provider.Body(ctx, provider.Call{
		Method: http.MethodGet,
		Path:   provider.APIPath("organizations", organizationID, "members", userID),
	})
}

func (s *Service) ListMembers(ctx context.Context, organizationID string) (string, error) {
	return s.provider.Body(ctx, provider.Call{
		Method: http.MethodGet,
		Path:   provider.APIPath("organizations", organizationID, "members"),
	})
}
