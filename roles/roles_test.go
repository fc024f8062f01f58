package roles_test

import (
	"testing"

	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/stretchr/testify/require"
)

func TestRoleClassification(t *testing.T) {
	require.Len(t, roles.All, 6)

	for _, r := range []roles.Role{roles.SuperAdmin, roles.SuporteAdmin, roles.FinanceiroAdmin} {
		require.True(t, r.IsPlatform(), r)
	}
	for _, r := range []roles.Role{roles.Secretario, roles.Financeiro, roles.Visualizador} {
		require.False(t, r.IsPlatform(), r)
	}
}

func TestAssignableExcludesSuperAdmin(t *testing.T) {
	assignable := roles.Assignables()
	require.Len(t, assignable, 5)
	require.NotContains(t, assignable, roles.SuperAdmin)
	require.False(t, roles.Role("ROOT").Assignable())
}

func TestParseAndDisplayName(t *testing.T) {
	r, err := roles.Parse("SECRETARIO")
	require.NoError(t, err)
	require.Equal(t, roles.Secretario, r)
	require.Equal(t, "Secretário", r.DisplayName())

	_, err = roles.Parse("admin")
	require.Error(t, err)
	require.Equal(t, "admin", roles.Role("admin").DisplayName())
}

func TestIn(t *testing.T) {
	require.True(t, roles.Financeiro.In(roles.SuperAdmin, roles.Financeiro))
	require.False(t, roles.Visualizador.In(roles.SuperAdmin, roles.Financeiro))
	require.False(t, roles.Visualizador.In())
}
