package models

// Permission bits. A role's Permissions field is the sum of the bits it
// grants; the API accepts permissions as a list of these values.
const (
	PermFollow   uint = 1
	PermComment  uint = 2
	PermWrite    uint = 4
	PermModerate uint = 8
	PermAdmin    uint = 16
)

// Role groups users by what they may do. Exactly one role carries
// Default=true; new accounts are attached to it.
type Role struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Slug        string `json:"slug" gorm:"size:64;uniqueIndex"`
	Name        string `json:"name" gorm:"size:64"`
	Default     bool   `json:"default" gorm:"index"`
	Permissions uint   `json:"permissions"`
}

// HasPermission reports whether the role grants the given permission bit.
func (r *Role) HasPermission(perm uint) bool {
	return r.Permissions&perm == perm
}

// AddPermission grants a permission bit.
func (r *Role) AddPermission(perm uint) {
	r.Permissions |= perm
}

// CreateRoleRequest defines the request body for creating a role. The
// permissions list is summed into the role's bitmask.
type CreateRoleRequest struct {
	Slug        string `json:"slug" validate:"required,min=1,max=64"`
	Name        string `json:"name" validate:"required,min=1,max=64"`
	Permissions []uint `json:"permissions" validate:"required,min=1,dive,oneof=1 2 4 8 16"`
}

// UpdateRoleRequest defines the request body for updating a role
type UpdateRoleRequest struct {
	Slug        string `json:"slug,omitempty" validate:"omitempty,min=1,max=64"`
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Permissions []uint `json:"permissions,omitempty" validate:"omitempty,min=1,dive,oneof=1 2 4 8 16"`
}

// SumPermissions folds a permissions list into one bitmask.
func SumPermissions(perms []uint) uint {
	var mask uint
	for _, p := range perms {
		mask |= p
	}
	return mask
}
