// Package service implements user management against the identity provider.
package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"users_manager_backend/internal/provider"
	"users_manager_backend/platform/apperr"
	"users_manager_backend/platform/config"
	"users_manager_backend/platform/patch"
)

const passwordEntropyBytes = 12

// Provider sends management API calls.
type Provider interface {
	Body(ctx context.Context, call provider.Call) (string, error)
}

// UserPatch lists the fields a modify request may change.
type UserPatch struct {
	GivenName         patch.Field[string]
	FamilyName        patch.Field[string]
	Name              patch.Field[string]
	Nickname          patch.Field[string]
	Picture           patch.Field[string]
	VerifyEmail       patch.Field[bool]
	VerifyPhoneNumber patch.Field[bool]
	Password          patch.Field[string]
	Username          patch.Field[string]
}

// Payload builds the PATCH body from the fields holding a value.
// Null fields are left out.
func (p UserPatch) Payload() patch.Object {
	out := patch.Object{}
	patch.Put(out, "given_name", p.GivenName)
	patch.Put(out, "family_name", p.FamilyName)
	patch.Put(out, "name", p.Name)
	patch.Put(out, "nickname", p.Nickname)
	patch.Put(out, "picture", p.Picture)
	patch.Put(out, "verify_email", p.VerifyEmail)
	patch.Put(out, "verify_phone_number", p.VerifyPhoneNumber)
	patch.Put(out, "password", p.Password)
	patch.Put(out, "username", p.Username)
	return out
}

type Service struct {
	provider    Provider
	cfg         config.UsersConfig
	newPassword func() (string, error)
}

func New(p Provider, cfg config.UsersConfig) *Service {
	return &Service{provider: p, cfg: cfg, newPassword: randomPassword}
}

// CreateUser registers a user with a random password and then requests a
// password change email so the user can set their own.
// When the reset request fails the user still exists; the returned error
// carries the created user and the reset failure in its details.
func (s *Service) CreateUser(ctx context.Context, email, name, familyName, username string) (string, error) {
	password, err := s.newPassword()
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to generate password", err)
	}

	created, err := s.provider.Body(ctx, provider.Call{
		Method: http.MethodPost,
		Path:   provider.APIPath("users"),
		Payload: map[string]any{
			"email":          email,
			"user_metadata":  map[string]any{},
			"email_verified": false,
			"app_metadata":   map[string]any{},
			"family_name":    familyName,
			"name":           name,
			"connection":     s.cfg.GetDBConnectionName(),
			"verify_email":   true,
			"username":       username,
			"password":       password,
		},
	})
	if err != nil {
		return "", err
	}

	if _, err := s.SendPasswordReset(ctx, email); err != nil {
		return "", partialCreateError(created, err)
	}
	return created, nil
}

func partialCreateError(created string, resetErr error) error {
	status := http.StatusBadGateway
	message := resetErr.Error()
	if appErr, ok := apperr.As(resetErr); ok {
		status = appErr.HTTPStatus()
		message = appErr.Message
	}

	var user any = created
	if json.Valid([]byte(created)) {
		user = json.RawMessage(created)
	}

	return &apperr.Error{
		Kind:    apperr.KindUpstream,
		Status:  http.StatusBadGateway,
		Message: "user created but password reset email could not be requested",
		Op:      "users.CreateUser",
		Err:     resetErr,
		Details: map[string]any{
			"user": user,
			"password_reset": map[string]any{
				"status": status,
				"error":  message,
			},
		},
	}
}

func (s *Service) ListUsers(ctx context.Context) (string, error) {
	return s.provider.Body(ctx, provider.Call{
		Method: http.MethodGet,
		Path:   provider.APIPath("users"),
	})
}

// GetUserIDByEmail returns the identity user_id of the first user with email.
func (s *Service) GetUserIDByEmail(ctx context.Context, email string) (string, error) {
	body, err := s.provider.Body(ctx, provider.Call{
		Method: http.MethodGet,
		Path:   provider.APIPath("users-by-email"),
		Query:  url.Values{"email": []string{email}},
	})
	if err != nil {
		return "", err
	}

	var users []struct {
		Identities []struct {
			UserID any `json:"user_id"`
		} `json:"identities"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	if err := dec.Decode(&users); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "unexpected users-by-email response", err)
	}

	if len(users) == 0 || len(users[0].Identities) == 0 || users[0].Identities[0].UserID == nil {
		return "", apperr.NotFound("user not found").WithDetails(map[string]string{"email": email})
	}
	return fmt.Sprint(users[0].Identities[0].UserID), nil
}

// SendPasswordReset asks the provider to email a password change link.
func (s *Service) SendPasswordReset(ctx context.Context, email string) (string, error) {
	return s.provider.Body(ctx, provider.Call{
		Method: http.MethodPost,
		Path:   "/dbconnections/change_password",
		Payload: map[string]any{
			"email":      email,
			"connection": s.cfg.GetDBConnectionName(),
		},
	})
}

// DeleteUser resolves the user by email and deletes it. Nothing is deleted
// when the lookup fails.
func (s *Service) DeleteUser(ctx context.Context, email string) (string, error) {
	userID, err := s.GetUserIDByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return s.provider.Body(ctx, provider.Call{
		Method: http.MethodDelete,
		Path:   provider.APIPath("users", s.cfg.GetUserIDPrefix()+userID),
	})
}

// ModifyUser sends only the fields of p holding a value. A patch left empty
// is rejected without calling the provider.
func (s *Service) ModifyUser(ctx context.Context, userID string, p UserPatch) (string, error) {
	payload := p.Payload()
	if payload.Empty() {
		return "", apperr.Validation("no fields to update")
	}
	return s.provider.Body(ctx, provider.Call{
		Method:  http.MethodPatch,
		Path:    provider.APIPath("users", s.cfg.GetUserIDPrefix()+userID),
		Payload: payload,
	})
}

func (s *Service) InviteToOrganization(ctx context.Context, email, organizationID string) (string, error) {
	return s.provider.Body(ctx, provider.Call{
		Method: http.MethodPost,
		Path:   provider.APIPath("organizations", organizationID, "invitations"),
		Payload: map[string]any{
			"inviter":               map[string]any{"name": s.cfg.GetInviterName()},
			"invitee":               map[string]any{"email": email},
			"client_id":             s.cfg.GetClientID(),
			"connection_id":         s.cfg.GetDatabaseConnectionID(),
			"app_metadata":          map[string]any{},
			"user_metadata":         map[string]any{},
			"ttl_sec":               0,
			"roles":                 []string{s.cfg.GetInvitationDefaultRole()},
			"send_invitation_email": true,
		},
	})
}

// AddRoles assigns roles to an existing member of an organization.
func (s *Service) AddRoles(ctx context.Context, userID, organizationID string, roles []string) (string, error) {
	return s.provider.Body(ctx, provider.Call{
		Method:  http.MethodPost,
		Path:    provider.APIPath("organizations", organizationID, "members", userID, "roles"),
		Payload: map[string]any{"roles": roles},
	})
}

func randomPassword() (string, error) {
	buf := make([]byte, passwordEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
