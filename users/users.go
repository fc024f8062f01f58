package users

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jrsteele09/safisaude-console/internal/utils"
	"github.com/jrsteele09/safisaude-console/roles"
)

// User is an identity as returned by the API. Platform roles have no TenantID.
type User struct {
	ID           string     `json:"id"`                 // Unique identifier for the user
	Email        string     `json:"email"`              // Login email
	Nome         string     `json:"nome"`               // Display name
	Role         roles.Role `json:"role"`               // Exactly one role
	TenantID     *string    `json:"tenantId,omitempty"` // Owning tenant, nil for platform roles
	Ativo        bool       `json:"ativo"`              // Inactive users cannot log in
	PasswordHash string     `json:"-"`                  // Only held by the fake API, never serialized
}

// CreateRequest is the body of POST /users. Role may not be SUPER_ADMIN.
type CreateRequest struct {
	Email    string     `json:"email"`
	Nome     string     `json:"nome"`
	Role     roles.Role `json:"role"`
	Password string     `json:"password"`
}

// UpdateRequest is the body of PATCH /users/{id}; nil fields are left alone.
type UpdateRequest struct {
	Nome  *string     `json:"nome,omitempty"`
	Role  *roles.Role `json:"role,omitempty"`
	Ativo *bool       `json:"ativo,omitempty"`
}

// Tenant returns the tenant id or "" for platform users.
func (u User) Tenant() string {
	return utils.Value(u.TenantID)
}

// HasRole reports whether the user's role is one of allowed.
func (u User) HasRole(allowed ...roles.Role) bool {
	return u.Role.In(allowed...)
}

// CanDelete reports whether the user may be removed. Super admins never can.
func CanDelete(u User) bool {
	return u.Role != roles.SuperAdmin
}

// CanEdit reports whether the user may be edited. Every user can.
func CanEdit(User) bool {
	return true
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares password with the user's stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
