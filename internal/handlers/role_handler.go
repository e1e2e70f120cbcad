package handlers

import (
	"net/http"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RoleHandler handles role administration HTTP requests
type RoleHandler struct {
	roleService    *services.RoleService
	userRepository repositories.UserRepository
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService *services.RoleService, userRepo repositories.UserRepository) *RoleHandler {
	return &RoleHandler{roleService: roleService, userRepository: userRepo}
}

// RegisterRoleRoutes registers role administration routes
func (h *RoleHandler) RegisterRoleRoutes(g *echo.Group) {
	g.GET("/roles", h.ListRoles)
	g.POST("/roles", h.CreateRole)
	g.PUT("/roles/:id", h.UpdateRole)
	g.DELETE("/roles/:id", h.DeleteRole)
}

// ListRoles returns a page of roles; admin only
func (h *RoleHandler) ListRoles(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	page, perPage := pageParams(c)
	roles, total, err := h.roleService.ListRoles(user, (page-1)*perPage, perPage)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: roles, Total: total, Page: page, PerPage: perPage})
}

// CreateRole creates a new role; admin only
func (h *RoleHandler) CreateRole(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roleService.CreateRole(user, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, role)
}

// UpdateRole edits an existing role; admin only
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roleService.UpdateRole(user, id, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, role)
}

// DeleteRole removes a role; admin only
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.roleService.DeleteRole(user, id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
