// Package guard decides whether an identity may open a page.
package guard

import (
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/users"
)

// Decision is the outcome of Evaluate.
type Decision int

const (
	// Allow lets the page render.
	Allow Decision = iota
	// RedirectLogin sends an anonymous visitor to the login page.
	RedirectLogin
	// RedirectLanding sends an identity without the required role to the
	// dashboard.
	RedirectLanding
)

const (
	LoginPath   = "/login"
	LandingPath = "/dashboard"
)

// MsgForbidden accompanies RedirectLanding.
const MsgForbidden = "Você não tem permissão para acessar esta página."

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectLanding:
		return "redirect_landing"
	default:
		return "unknown"
	}
}

// Target is the path a redirect decision points to, or "" for Allow.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectLanding:
		return LandingPath
	default:
		return ""
	}
}

// Evaluate checks identity against allowed. A nil identity always yields
// RedirectLogin; an empty allowed list admits any identity.
func Evaluate(identity *users.User, allowed ...roles.Role) Decision {
	if identity == nil {
		return RedirectLogin
	}
	if len(allowed) == 0 || identity.Role.In(allowed...) {
		return Allow
	}
	return RedirectLanding
}

// Page allow-lists.
var (
	AnyRole = []roles.Role{}

	// Transacoes admits everyone but VISUALIZADOR.
	Transacoes = []roles.Role{
		roles.SuperAdmin, roles.SuporteAdmin, roles.FinanceiroAdmin,
		roles.Secretario, roles.Financeiro,
	}
	Clientes = []roles.Role{roles.SuperAdmin}
	Usuarios = []roles.Role{roles.SuperAdmin}
)

// DashboardKind selects which dashboard variant a role sees.
type DashboardKind string

const (
	DashboardSuperAdmin DashboardKind = "super-admin"
	DashboardAdmin      DashboardKind = "admin"
	DashboardFinanceiro DashboardKind = "financeiro"
	DashboardSuporte    DashboardKind = "suporte"
	DashboardOperador   DashboardKind = "operador"
)

// Dashboard returns the dashboard variant for role.
func Dashboard(role roles.Role) DashboardKind {
	switch role {
	case roles.SuperAdmin:
		return DashboardSuperAdmin
	case roles.SuporteAdmin, roles.FinanceiroAdmin:
		return DashboardAdmin
	case roles.Financeiro:
		return DashboardFinanceiro
	case roles.Visualizador:
		return DashboardSuporte
	default:
		return DashboardOperador
	}
}
