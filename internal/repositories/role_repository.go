package repositories

import (
	"github.com/bloghive/backend/internal/models"
	"gorm.io/gorm"
)

// RoleRepository defines the interface for role data operations
type RoleRepository interface {
	CreateRole(role *models.Role) error
	GetRoleByID(id uint) (*models.Role, error)
	GetRoleBySlug(slug string) (*models.Role, error)
	GetRoles(offset, limit int) ([]models.Role, int64, error)
	GetDefaultRole() (*models.Role, error)
	UpdateRole(role *models.Role) error
	DeleteRole(id uint) error
	EnsureDefaultRoles() error
}

// PostgresRoleRepository implements RoleRepository for PostgreSQL
type PostgresRoleRepository struct {
	db *gorm.DB
}

// NewPostgresRoleRepository creates a new PostgresRoleRepository
func NewPostgresRoleRepository(db *gorm.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

// CreateRole creates a new role in PostgreSQL
func (r *PostgresRoleRepository) CreateRole(role *models.Role) error {
	return r.db.Create(role).Error
}

// GetRoleByID retrieves a role by ID from PostgreSQL
func (r *PostgresRoleRepository) GetRoleByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoleBySlug retrieves a role by its slug
func (r *PostgresRoleRepository) GetRoleBySlug(slug string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("slug = ?", slug).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoles retrieves a page of roles ordered by ID, plus the total count
func (r *PostgresRoleRepository) GetRoles(offset, limit int) ([]models.Role, int64, error) {
	var roles []models.Role
	var total int64
	base := r.db.Model(&models.Role{}).Session(&gorm.Session{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := base.Order("id").Offset(offset).Limit(limit).Find(&roles).Error; err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

// GetDefaultRole retrieves the role assigned to new accounts
func (r *PostgresRoleRepository) GetDefaultRole() (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("\"default\" = ?", true).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole updates an existing role in PostgreSQL
func (r *PostgresRoleRepository) UpdateRole(role *models.Role) error {
	return r.db.Save(role).Error
}

// DeleteRole deletes a role by ID from PostgreSQL
func (r *PostgresRoleRepository) DeleteRole(id uint) error {
	result := r.db.Delete(&models.Role{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EnsureDefaultRoles seeds the built-in roles, updating their permission
// masks in place when they already exist. "user" is the default role.
func (r *PostgresRoleRepository) EnsureDefaultRoles() error {
	builtin := []models.Role{
		{
			Slug:        "user",
			Name:        "User",
			Default:     true,
			Permissions: models.PermFollow | models.PermComment | models.PermWrite,
		},
		{
			Slug:        "moderator",
			Name:        "Moderator",
			Permissions: models.PermFollow | models.PermComment | models.PermWrite | models.PermModerate,
		},
		{
			Slug:        "administrator",
			Name:        "Administrator",
			Permissions: models.PermFollow | models.PermComment | models.PermWrite | models.PermModerate | models.PermAdmin,
		},
	}
	for _, want := range builtin {
		existing, err := r.GetRoleBySlug(want.Slug)
		if err == gorm.ErrRecordNotFound {
			role := want
			if err := r.db.Create(&role).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		existing.Name = want.Name
		existing.Default = want.Default
		existing.Permissions = want.Permissions
		if err := r.db.Save(existing).Error; err != nil {
			return err
		}
	}
	return nil
}
