// Package directory provides the locally stored organization and employee directory.
package directory

import (
	"users_manager_backend/internal/directory/handler"
	"users_manager_backend/internal/directory/repository"
	"users_manager_backend/internal/directory/service"
	apphttp "users_manager_backend/internal/http"
	"users_manager_backend/platform/logger"
	"users_manager_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(db repository.DBTX, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(db)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "directory"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API.Group("/directory"))
}

var _ apphttp.Module = (*Module)(nil)
