package services

import (
	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"gorm.io/gorm"
)

// RoleService owns the role catalogue. Listing and every mutation require
// the admin permission on the caller's role.
type RoleService struct {
	store repositories.Store
}

// NewRoleService creates a new RoleService
func NewRoleService(store repositories.Store) *RoleService {
	return &RoleService{store: store}
}

func (s *RoleService) requireAdmin(actor *models.User) error {
	if actor.RoleID == 0 {
		return forbiddenf("user %d has no role", actor.ID)
	}
	role, err := s.store.Roles().GetRoleByID(actor.RoleID)
	if err != nil {
		return forbiddenf("user %d has no role", actor.ID)
	}
	if !role.HasPermission(models.PermAdmin) {
		return forbiddenf("user %d lacks the admin permission", actor.ID)
	}
	return nil
}

// ListRoles returns a page of roles plus the total count; admin only.
func (s *RoleService) ListRoles(actor *models.User, offset, limit int) ([]models.Role, int64, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	return s.store.Roles().GetRoles(offset, limit)
}

// CreateRole creates a role from the request; admin only. A taken slug is a
// conflict.
func (s *RoleService) CreateRole(actor *models.User, req models.CreateRoleRequest) (*models.Role, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.store.Roles().GetRoleBySlug(req.Slug); err == nil {
		return nil, conflictf("role slug %q is taken", req.Slug)
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	role := &models.Role{
		Slug:        req.Slug,
		Name:        req.Name,
		Permissions: models.SumPermissions(req.Permissions),
	}
	if err := s.store.Roles().CreateRole(role); err != nil {
		return nil, err
	}
	return role, nil
}

// UpdateRole edits a role; admin only. Renaming to a taken slug is a conflict.
func (s *RoleService) UpdateRole(actor *models.User, id uint, req models.UpdateRoleRequest) (*models.Role, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	role, err := s.store.Roles().GetRoleByID(id)
	if err != nil {
		return nil, asNotFound(err, "role %d", id)
	}
	if req.Slug != "" && req.Slug != role.Slug {
		if _, err := s.store.Roles().GetRoleBySlug(req.Slug); err == nil {
			return nil, conflictf("role slug %q is taken", req.Slug)
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		role.Slug = req.Slug
	}
	if req.Name != "" {
		role.Name = req.Name
	}
	if len(req.Permissions) > 0 {
		role.Permissions = models.SumPermissions(req.Permissions)
	}
	if err := s.store.Roles().UpdateRole(role); err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole removes a role; admin only. The default role cannot be deleted
// while new accounts depend on it.
func (s *RoleService) DeleteRole(actor *models.User, id uint) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	role, err := s.store.Roles().GetRoleByID(id)
	if err != nil {
		return asNotFound(err, "role %d", id)
	}
	if role.Default {
		return invalidf("role %d is the default role", id)
	}
	return s.store.Roles().DeleteRole(id)
}
