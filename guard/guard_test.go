package guard_test

import (
	"testing"

	"github.com/jrsteele09/safisaude-console/guard"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/users"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("anonymous always goes to login", func(t *testing.T) {
		require.Equal(t, guard.RedirectLogin, guard.Evaluate(nil))
		require.Equal(t, guard.RedirectLogin, guard.Evaluate(nil, roles.SuperAdmin))
		require.Equal(t, "/login", guard.RedirectLogin.Target())
	})

	t.Run("empty allow list admits any identity", func(t *testing.T) {
		for _, r := range roles.All {
			require.Equal(t, guard.Allow, guard.Evaluate(&users.User{Role: r}, guard.AnyRole...))
		}
	})

	t.Run("role outside allow list goes to landing", func(t *testing.T) {
		d := guard.Evaluate(&users.User{Role: roles.Secretario}, guard.Clientes...)
		require.Equal(t, guard.RedirectLanding, d)
		require.Equal(t, "/dashboard", d.Target())
		require.Empty(t, guard.Allow.Target())
	})

	t.Run("page allow lists", func(t *testing.T) {
		for _, r := range roles.All {
			u := &users.User{Role: r}
			require.Equal(t, r != roles.Visualizador, guard.Evaluate(u, guard.Transacoes...) == guard.Allow, r)
			require.Equal(t, r == roles.SuperAdmin, guard.Evaluate(u, guard.Clientes...) == guard.Allow, r)
			require.Equal(t, r == roles.SuperAdmin, guard.Evaluate(u, guard.Usuarios...) == guard.Allow, r)
		}
	})

	t.Run("unknown role only passes open pages", func(t *testing.T) {
		u := &users.User{Role: "ROOT"}
		require.Equal(t, guard.Allow, guard.Evaluate(u))
		require.Equal(t, guard.RedirectLanding, guard.Evaluate(u, guard.Transacoes...))
	})
}

func TestDashboard(t *testing.T) {
	want := map[roles.Role]guard.DashboardKind{
		roles.SuperAdmin:      guard.DashboardSuperAdmin,
		roles.SuporteAdmin:    guard.DashboardAdmin,
		roles.FinanceiroAdmin: guard.DashboardAdmin,
		roles.Financeiro:      guard.DashboardFinanceiro,
		roles.Visualizador:    guard.DashboardSuporte,
		roles.Secretario:      guard.DashboardOperador,
	}
	for r, kind := range want {
		require.Equal(t, kind, guard.Dashboard(r), r)
	}
}

func TestDecisionString(t *testing.T) {
	require.Equal(t, "allow", guard.Allow.String())
	require.Equal(t, "redirect_login", guard.RedirectLogin.String())
	require.Equal(t, "redirect_landing", guard.RedirectLanding.String())
}
