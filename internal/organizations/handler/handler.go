package handler

import (
	"net/http"

	"users_manager_backend/internal/organizations/service"
	"users_manager_backend/internal/organizations/transport"
	"users_manager_backend/platform/httpkit"
	"users_manager_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/organization", h.GetOrganization)
	rg.GET("/organizations", h.ListOrganizations)
	rg.POST("/organization", h.CreateOrganization)
	rg.DELETE("/organization", h.DeleteOrganization)
	rg.PUT("/organization", h.ModifyOrganization)
	rg.PATCH("/change_client_type", h.ChangeClientType)
	rg.DELETE("/organization/user", h.RemoveUser)
	rg.GET("/organization/members", h.ListMembers)
}

func (h *Handler) GetOrganization(c *gin.Context) {
	var req transport.GetOrganizationRequest
	if !httpkit.BindQuery(c, h.val, &req) {
		return
	}

	body, err := h.svc.GetByName(c.Request.Context(), req.Name)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusOK, body)
}

func (h *Handler) ListOrganizations(c *gin.Context) {
	var req transport.ListOrganizationsRequest
	if !httpkit.BindQuery(c, h.val, &req) {
		return
	}

	body, err := h.svc.List(c.Request.Context(), req.TenantDomain)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusOK, body)
}

func (h *Handler) CreateOrganization(c *gin.Context) {
	var req transport.CreateOrganizationRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	body, err := h.svc.Create(c.Request.Context(), req.Name, req.DisplayName, service.Branding{
		PrimaryColor:        req.PrimaryColor,
		PageBackgroundColor: req.BackgroundColor,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusCreated, body)
}

func (h *Handler) DeleteOrganization(c *gin.Context) {
	var req transport.OrganizationIdentifierRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	_, err := h.svc.DeleteByIdentifier(c.Request.Context(), req.Identifier)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ModifyOrganization(c *gin.Context) {
	var req transport.ModifyOrganizationRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	body, err := h.svc.Modify(c.Request.Context(), req.Identifier, service.OrganizationPatch{
		Name:            req.Name,
		DisplayName:     req.DisplayName,
		LogoURL:         req.LogoURL,
		PrimaryColor:    req.PrimaryColor,
		BackgroundColor: req.BackgroundColor,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusOK, body)
}

func (h *Handler) ChangeClientType(c *gin.Context) {
	var req transport.ChangeClientTypeRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	body, err := h.svc.ChangeClientType(c.Request.Context(), req.ClientID, req.AppType)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusOK, body)
}

func (h *Handler) RemoveUser(c *gin.Context) {
	var req transport.RemoveUserRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	body, err := h.svc.RemoveUser(c.Request.Context(), req.UserID, req.OrganizationID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusOK, body)
}

func (h *Handler) ListMembers(c *gin.Context) {
	var req transport.ListMembersRequest
	if !httpkit.BindQuery(c, h.val, &req) {
		return
	}

	body, err := h.svc.ListMembers(c.Request.Context(), req.OrganizationID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusOK, body)
}
