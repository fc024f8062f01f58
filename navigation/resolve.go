package navigation

import "github.com/jrsteele09/safisaude-console/roles"

// Resolve returns the navigation tree for role. Unknown roles get an empty
// tree. Every call returns a fresh copy.
func Resolve(role roles.Role) Tree {
	var t Tree
	switch role {
	case roles.SuperAdmin:
		t = superAdminTree()
	case roles.SuporteAdmin:
		t = suporteAdminTree()
	case roles.FinanceiroAdmin:
		t = financeiroAdminTree()
	case roles.Secretario:
		t = secretarioTree()
	case roles.Financeiro:
		t = financeiroTree()
	case roles.Visualizador:
		t = visualizadorTree()
	}
	if t.Main == nil {
		t.Main = []Item{}
	}
	if t.Bottom == nil {
		t.Bottom = []Item{}
	}
	if t.Mobile == nil {
		t.Mobile = []Item{}
	}
	return t
}

var roleTitles = map[roles.Role]string{
	roles.SuperAdmin:      "Super Administrador",
	roles.SuporteAdmin:    "Administrador de Suporte",
	roles.FinanceiroAdmin: "Financeiro Administrativo",
	roles.Secretario:      "Secretário",
	roles.Financeiro:      "Financeiro",
	roles.Visualizador:    "Visualizador",
}

// RoleTitle is the long role name shown in the sidebar header.
func RoleTitle(role roles.Role) string {
	if title, ok := roleTitles[role]; ok {
		return title
	}
	return string(role)
}
