package handler

import (
	"net/http"
	"strconv"

	"users_manager_backend/internal/directory/service"
	"users_manager_backend/internal/directory/transport"
	"users_manager_backend/platform/apperr"
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
	rg.POST("/organizations", h.CreateOrganization)
	rg.GET("/organizations/:id", h.GetOrganization)
	rg.DELETE("/organizations/:id", h.DeleteOrganization)
	rg.POST("/organizations/:id/employees", h.AddEmployee)
	rg.PATCH("/employees/:id", h.UpdateEmployee)
	rg.DELETE("/employees/:id", h.DeleteEmployee)
}

func (h *Handler) CreateOrganization(c *gin.Context) {
	var req transport.CreateOrganizationRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	org, err := h.svc.CreateOrganization(c.Request.Context(), req.Name)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToOrganizationResponse(org))
}

func (h *Handler) GetOrganization(c *gin.Context) {
	id, err := pathID(c)
	if httpkit.HandleError(c, err) {
		return
	}

	org, err := h.svc.GetOrganization(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToOrganizationResponse(org))
}

func (h *Handler) DeleteOrganization(c *gin.Context) {
	id, err := pathID(c)
	if httpkit.HandleError(c, err) {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteOrganization(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddEmployee(c *gin.Context) {
	organizationID, err := pathID(c)
	if httpkit.HandleError(c, err) {
		return
	}

	var req transport.CreateEmployeeRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	e, err := h.svc.AddEmployee(c.Request.Context(), organizationID, service.NewEmployee{
		Name:             req.Name,
		Surname:          req.Surname,
		Birthdate:        req.Birthdate,
		Role:             req.Role,
		EmploymentStatus: req.EmploymentStatus,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToEmployeeResponse(e))
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, err := pathID(c)
	if httpkit.HandleError(c, err) {
		return
	}

	var req transport.UpdateEmployeeRequest
	if !httpkit.BindJSON(c, h.val, &req) {
		return
	}

	e, err := h.svc.UpdateEmployee(c.Request.Context(), id, service.EmployeePatch{
		Name:             req.Name,
		Surname:          req.Surname,
		Birthdate:        req.Birthdate,
		Role:             req.Role,
		EmploymentStatus: req.EmploymentStatus,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToEmployeeResponse(e))
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, err := pathID(c)
	if httpkit.HandleError(c, err) {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteEmployee(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid id").WithDetails(map[string]string{"id": c.Param("id")})
	}
	return id, nil
}
