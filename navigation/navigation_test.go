package navigation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/safisaude-console/kvstore"
	"github.com/jrsteele09/safisaude-console/navigation"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func loadGolden(t *testing.T, role roles.Role) navigation.Tree {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", string(role)+".yaml"))
	require.NoError(t, err)
	var tree navigation.Tree
	require.NoError(t, yaml.Unmarshal(raw, &tree))
	return tree
}

func TestResolveMatchesGolden(t *testing.T) {
	for _, role := range roles.All {
		t.Run(string(role), func(t *testing.T) {
			require.Equal(t, loadGolden(t, role), navigation.Resolve(role))
		})
	}
}

func TestResolveInvariants(t *testing.T) {
	for _, role := range roles.All {
		tree := navigation.Resolve(role)
		require.LessOrEqual(t, len(tree.Mobile), navigation.MaxMobileItems, role)
		require.NotEmpty(t, tree.Main, role)
		require.Equal(t, "dashboard", tree.Main[0].ID, role)

		require.Len(t, tree.Bottom, 2, role)
		require.Equal(t, "/perfil", tree.Bottom[0].Path, role)
		require.Equal(t, "/ajuda", tree.Bottom[1].Path, role)

		primaries := 0
		for _, item := range tree.Mobile {
			if item.Primary {
				primaries++
			}
		}
		require.Equal(t, 1, primaries, role)
		require.True(t, tree.Mobile[len(tree.Mobile)-1].IsMenu(), role)
	}
}

func TestResolveUnknownRole(t *testing.T) {
	for _, role := range []roles.Role{"", "ROOT", "super_admin"} {
		tree := navigation.Resolve(role)
		require.NotNil(t, tree.Main)
		require.NotNil(t, tree.Bottom)
		require.NotNil(t, tree.Mobile)
		require.Empty(t, tree.Main)
		require.Empty(t, tree.Bottom)
		require.Empty(t, tree.Mobile)
	}
}

func TestResolveSecretario(t *testing.T) {
	tree := navigation.Resolve(roles.Secretario)

	ids := func(items []navigation.Item) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = item.ID
		}
		return out
	}
	require.Equal(t, []string{"dashboard", "usuarios", "transacoes", "lancamentos"}, ids(tree.Main))
	require.Equal(t, []string{"inicio", "usuarios-mobile", "novo", "transacoes-mobile", "menu"}, ids(tree.Mobile))

	transacoes := tree.Main[2]
	require.Equal(t, &navigation.Badge{Count: 8, Variant: navigation.BadgeWarning}, transacoes.Badge)

	usuarios := tree.Main[1]
	require.Len(t, usuarios.Submenu, 2)
	require.Equal(t, "/usuarios/novo", usuarios.Submenu[1].Path)
	require.True(t, usuarios.Submenu[1].Highlight)

	require.Equal(t, "/usuarios/novo", tree.Mobile[2].Path)
	require.True(t, tree.Mobile[2].Primary)
}

func TestResolveReturnsCopies(t *testing.T) {
	first := navigation.Resolve(roles.Secretario)
	first.Main[2].Badge.Count = 99
	first.Main[1].Submenu[0].Label = "changed"

	second := navigation.Resolve(roles.Secretario)
	require.Equal(t, 8, second.Main[2].Badge.Count)
	require.Equal(t, "Todos Usuarios", second.Main[1].Submenu[0].Label)
}

func TestActive(t *testing.T) {
	tree := navigation.Resolve(roles.SuperAdmin)
	require.Equal(t, "dashboard", tree.Active("/dashboard"))
	require.Equal(t, "clientes", tree.Active("/clientes/abc/editar"))
	require.Equal(t, "perfil", tree.Active("/perfil"))
	require.Empty(t, tree.Active("/dashboards"))
	require.Empty(t, tree.Active("#"))

	require.True(t, navigation.Matches("/usuarios", "/usuarios/novo"))
	require.False(t, navigation.Matches("/usuarios", "/usuariosx"))
	require.False(t, navigation.Matches(navigation.MenuPath, navigation.MenuPath))
}

func TestRoleTitle(t *testing.T) {
	require.Equal(t, "Super Administrador", navigation.RoleTitle(roles.SuperAdmin))
	require.Equal(t, "Secretário", navigation.RoleTitle(roles.Secretario))
	require.Equal(t, "ROOT", navigation.RoleTitle("ROOT"))
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemoryStore()
	prefs := navigation.NewPreferences(mem)

	collapsed, err := prefs.Collapsed(ctx)
	require.NoError(t, err)
	require.False(t, collapsed)

	collapsed, err = prefs.Toggle(ctx)
	require.NoError(t, err)
	require.True(t, collapsed)

	raw, err := mem.Get(ctx, "safisaude_sidebar_collapsed")
	require.NoError(t, err)
	require.Equal(t, "true", raw)

	require.NoError(t, prefs.SetCollapsed(ctx, false))
	collapsed, err = prefs.Collapsed(ctx)
	require.NoError(t, err)
	require.False(t, collapsed)

	require.NoError(t, mem.Set(ctx, "safisaude_sidebar_collapsed", "garbage"))
	collapsed, err = prefs.Collapsed(ctx)
	require.NoError(t, err)
	require.False(t, collapsed)
}
