package users

import "github.com/jrsteele09/safisaude-console/roles"

// ListFilter narrows Repo.List. Zero values match everything.
type ListFilter struct {
	TenantID string
	Role     roles.Role
	Search   string
}

// Repo stores users for the fake API.
type Repo interface {
	Upsert(user *User) error
	Delete(id string) error
	GetByEmail(email string) (*User, error)
	GetByID(id string) (*User, error)
	List(filter ListFilter) ([]*User, error)
	DeleteByTenant(tenantID string) (int, error)
}
