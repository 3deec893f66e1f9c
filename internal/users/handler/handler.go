package handler

import (
	"net/http"
	"strings"

	"users_manager_backend/internal/users/service"
	"users_manager_backend/internal/users/transport"
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
	rg.POST("/user", h.CreateUser)
	rg.GET("/users", h.ListUsers)
	rg.GET("/user/id/:email", h.GetUserID)
	rg.POST("/user/password-reset/request", h.RequestPasswordReset)
	rg.DELETE("/user", h.DeleteUser)
	rg.PUT("/user", h.ModifyUser)
	rg.POST("/user/organization/invitation", h.InviteToOrganization)
	rg.POST("/user/roles", h.AddRoles)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req transport.CreateUserRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	body, err := h.svc.CreateUser(c.Request.Context(), req.Email, req.Name, req.FamilyName, req.Username)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusCreated, body)
}

func (h *Handler) ListUsers(c *gin.Context) {
	body, err := h.svc.ListUsers(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusOK, body)
}

func (h *Handler) GetUserID(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))
	if err := h.val.Var(email, "required,email"); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "validation failed", map[string]string{"email": "email"})
		return
	}

	userID, err := h.svc.GetUserIDByEmail(c.Request.Context(), email)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, userID)
}

func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req transport.PasswordResetRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	body, err := h.svc.SendPasswordReset(c.Request.Context(), req.UserEmail)
	if httpkit.HandleError(c, err) {
		return
	}
	// change_password answers with a plain text sentence.
	httpkit.JSON(c, http.StatusCreated, body)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	var req transport.DeleteUserRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	_, err := h.svc.DeleteUser(c.Request.Context(), req.Email)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ModifyUser(c *gin.Context) {
	var req transport.ModifyUserRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	body, err := h.svc.ModifyUser(c.Request.Context(), req.UserID, service.UserPatch{
		GivenName:         req.GivenName,
		FamilyName:        req.FamilyName,
		Name:              req.Name,
		Nickname:          req.Nickname,
		Picture:           req.Picture,
		VerifyEmail:       req.VerifyEmail,
		VerifyPhoneNumber: req.VerifyPhoneNumber,
		Password:          req.Password,
		Username:          req.Username,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusOK, body)
}

func (h *Handler) InviteToOrganization(c *gin.Context) {
	var req transport.InvitationRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	body, err := h.svc.InviteToOrganization(c.Request.Context(), req.Email, req.OrganizationID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusOK, body)
}

func (h *Handler) AddRoles(c *gin.Context) {
	var req transport.AddRolesRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	body, err := h.svc.AddRoles(c.Request.Context(), req.UserID, req.Organization, req.Roles)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Raw(c, http.StatusOK, body)
}
