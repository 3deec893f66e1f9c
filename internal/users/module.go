// Package users provides the user management module.
package users

import (
	apphttp "users_manager_backend/internal/http"
	"users_manager_backend/internal/users/handler"
	"users_manager_backend/internal/users/service"
	"users_manager_backend/platform/config"
	"users_manager_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(p service.Provider, cfg config.UsersConfig, val *validator.Validator) *Module {
	svc := service.New(p, cfg)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "users"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API)
}

var _ apphttp.Module = (*Module)(nil)
