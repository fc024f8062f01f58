// Package roles defines the closed set of identity roles used for navigation
// and route access.
package roles

import "fmt"

// Role represents a user's role. Platform roles carry no tenant; tenant roles
// are scoped to a single client organisation.
type Role string

const (
	// Platform roles
	SuperAdmin      Role = "SUPER_ADMIN"      // Manages every tenant and user
	SuporteAdmin    Role = "SUPORTE_ADMIN"    // Supports client tenants
	FinanceiroAdmin Role = "FINANCEIRO_ADMIN" // Financial operations across tenants

	// Tenant roles
	Secretario   Role = "SECRETARIO"   // Administers a tenant
	Financeiro   Role = "FINANCEIRO"   // Creates transactions within a tenant
	Visualizador Role = "VISUALIZADOR" // Read-only dashboards
)

// All lists every role in declaration order.
var All = []Role{SuperAdmin, SuporteAdmin, FinanceiroAdmin, Secretario, Financeiro, Visualizador}

var displayNames = map[Role]string{
	SuperAdmin:      "Super Admin",
	SuporteAdmin:    "Suporte Admin",
	FinanceiroAdmin: "Financeiro Admin",
	Secretario:      "Secretário",
	Financeiro:      "Financeiro",
	Visualizador:    "Visualizador",
}

// Valid reports whether r is one of the six defined roles.
func (r Role) Valid() bool {
	_, ok := displayNames[r]
	return ok
}

// IsPlatform reports whether r is a platform-level role (no tenant).
func (r Role) IsPlatform() bool {
	return r == SuperAdmin || r == SuporteAdmin || r == FinanceiroAdmin
}

// Assignable reports whether r may be set through user create/update.
// SUPER_ADMIN is never assignable.
func (r Role) Assignable() bool {
	return r.Valid() && r != SuperAdmin
}

// DisplayName returns the label shown to users, or the raw value for unknown roles.
func (r Role) DisplayName() string {
	if name, ok := displayNames[r]; ok {
		return name
	}
	return string(r)
}

func (r Role) String() string {
	return string(r)
}

// Assignables returns the roles that user management may assign.
func Assignables() []Role {
	out := make([]Role, 0, len(All)-1)
	for _, r := range All {
		if r.Assignable() {
			out = append(out, r)
		}
	}
	return out
}

// Parse converts s to a Role, rejecting unknown values.
func Parse(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// In reports whether r is contained in allowed.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}
