package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/safisaude-console/fakeapi"
	"github.com/jrsteele09/safisaude-console/internal/config"
	"github.com/jrsteele09/safisaude-console/lancamentos"
	"github.com/jrsteele09/safisaude-console/navigation"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/tenants"
	"github.com/jrsteele09/safisaude-console/users"
)

type cli struct {
	t      *testing.T
	apiURL string
	dbPath string
}

func setupCLI(t *testing.T) *cli {
	t.Helper()
	api := fakeapi.New("test-secret")
	require.NoError(t, api.Seed())
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	return &cli{
		t:      t,
		apiURL: srv.URL + fakeapi.BasePath,
		dbPath: filepath.Join(t.TempDir(), "session", "consolectl.db"),
	}
}

// exec runs one invocation, as a separate process would.
func (c *cli) exec(stdin string, args ...string) (string, error) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	cmd := rootCmd(config.New())
	cmd.SetArgs(append([]string{"--api", c.apiURL, "--db", c.dbPath, "--log-level", "error"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) mustExec(args ...string) string {
	c.t.Helper()
	out, err := c.exec("", args...)
	require.NoError(c.t, err)
	return out
}

func (c *cli) login(email string) {
	c.t.Helper()
	c.mustExec("login", "--email", email, "--password", fakeapi.SeedPassword)
}

func decodeOutput[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	return v
}

func TestLoginPersistsBetweenInvocations(t *testing.T) {
	c := setupCLI(t)

	out := c.mustExec("login", "-e", fakeapi.SeedSecretario, "-p", fakeapi.SeedPassword)
	require.Contains(t, out, "Secretário")

	who := decodeOutput[whoami](t, c.mustExec("whoami", "-o", "json"))
	require.Equal(t, fakeapi.SeedSecretario, who.User.Email)
	require.Equal(t, "Secretário", who.RoleTitle)
	require.Equal(t, "operador", string(who.Dashboard))
	require.Equal(t, "authenticated", who.State)
	require.False(t, who.ExpiresAt.IsZero())

	c.mustExec("logout")
	_, err := c.exec("", "whoami")
	require.ErrorIs(t, err, errNotLoggedIn)
}

func TestLoginPromptsFromStdin(t *testing.T) {
	c := setupCLI(t)

	_, err := c.exec(fakeapi.SeedSuperAdmin+"\n"+fakeapi.SeedPassword+"\n", "login")
	require.NoError(t, err)

	who := decodeOutput[whoami](t, c.mustExec("whoami", "-o", "json"))
	require.Equal(t, fakeapi.SeedSuperAdmin, who.User.Email)
}

func TestLoginErrors(t *testing.T) {
	c := setupCLI(t)

	t.Run("invalid form", func(t *testing.T) {
		_, err := c.exec("", "login", "--email", "not-an-email", "--password", "x")
		require.Error(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := c.exec("", "login", "--email", fakeapi.SeedSecretario, "--password", "wrong-password")
		require.Error(t, err)
		_, err = c.exec("", "whoami")
		require.ErrorIs(t, err, errNotLoggedIn)
	})

	t.Run("already logged in", func(t *testing.T) {
		c.login(fakeapi.SeedSecretario)
		_, err := c.exec("", "login", "--email", fakeapi.SeedSuperAdmin, "--password", fakeapi.SeedPassword)
		require.ErrorContains(t, err, "already logged in")
	})
}

func TestRefresh(t *testing.T) {
	c := setupCLI(t)
	c.login(fakeapi.SeedFinanceiro)

	out := c.mustExec("refresh")
	require.Contains(t, out, "Token valid until")
}

func TestNav(t *testing.T) {
	c := setupCLI(t)
	c.login(fakeapi.SeedSuperAdmin)

	v := decodeOutput[navView](t, c.mustExec("nav", "--path", "/usuarios/42", "-o", "json"))
	require.Len(t, v.Tree.Main, len(navigation.Resolve(roles.SuperAdmin).Main))
	require.Equal(t, "usuarios", v.Active)
}

func TestTenantsAndUsers(t *testing.T) {
	c := setupCLI(t)
	c.login(fakeapi.SeedSuperAdmin)

	list := decodeOutput[[]tenants.Tenant](t, c.mustExec("tenants", "list", "-o", "json"))
	require.Len(t, list, 2)

	found := decodeOutput[[]users.User](t, c.mustExec("users", "list", "--search", "campinas", "-o", "json"))
	require.NotEmpty(t, found)
	for _, u := range found {
		match := strings.Contains(strings.ToLower(u.Email), "campinas") || strings.Contains(strings.ToLower(u.Nome), "campinas")
		require.True(t, match, u.Email)
	}

	_, err := c.exec("", "users", "list", "--role", "NOT_A_ROLE")
	require.Error(t, err)
}

func TestLancamentos(t *testing.T) {
	c := setupCLI(t)
	c.login(fakeapi.SeedSecretario)

	page := decodeOutput[lancamentos.Page](t, c.mustExec("lancamentos", "list", "--limit", "5", "--sort-by", "ano", "--sort-order", "ASC", "-o", "json"))
	require.Equal(t, 24, page.Pagination.Total)
	require.Len(t, page.Data, 5)
	for i := 1; i < len(page.Data); i++ {
		require.LessOrEqual(t, page.Data[i-1].Ano, page.Data[i].Ano)
	}

	stats := decodeOutput[lancamentos.Stats](t, c.mustExec("lancamentos", "stats", "--uf", "sp", "-o", "json"))
	require.Equal(t, 24, stats.TotalLancamentos)
}

func TestYAMLOutput(t *testing.T) {
	c := setupCLI(t)
	c.login(fakeapi.SeedVisualizador)

	out := c.mustExec("whoami")
	require.Contains(t, out, "email: "+fakeapi.SeedVisualizador)
	require.Contains(t, out, "roleTitle: Visualizador")
	require.NotContains(t, out, "{")

	_, err := c.exec("", "whoami", "-o", "xml")
	require.ErrorContains(t, err, "unknown output format")
}
