package fakeapi_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/safisaude-console/apiclient"
	"github.com/jrsteele09/safisaude-console/fakeapi"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/internal/utils"
	"github.com/jrsteele09/safisaude-console/kvstore"
	"github.com/jrsteele09/safisaude-console/lancamentos"
	"github.com/jrsteele09/safisaude-console/navigation"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/session"
	"github.com/jrsteele09/safisaude-console/tenants"
	"github.com/jrsteele09/safisaude-console/users"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type fixture struct {
	api    *fakeapi.Server
	url    string
	clock  *clock
	client *apiclient.Client
	mgr    *session.Manager
}

func setupTestFixture(t *testing.T) *fixture {
	t.Helper()
	c := &clock{now: time.Now()}
	api := fakeapi.New("test-secret", fakeapi.WithNowTime(c.Now))
	require.NoError(t, api.Seed())
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return &fixture{api: api, url: srv.URL + fakeapi.BasePath, clock: c}
}

// loginAs wires a client and session manager the way the console does and
// logs in.
func (f *fixture) loginAs(t *testing.T, email string) {
	t.Helper()
	f.client = apiclient.New(f.url)
	f.mgr = session.NewManager(session.NewRemoteAuth(f.client), kvstore.NewMemoryStore())
	f.client.SetTokenSource(f.mgr)
	f.client.OnUnauthorized(f.mgr.HandleUnauthorized)
	t.Cleanup(f.mgr.Close)

	_, err := f.mgr.Login(context.Background(), email, fakeapi.SeedPassword)
	require.NoError(t, err)
}

func TestSecretarioLoginAndNavigation(t *testing.T) {
	f := setupTestFixture(t)
	f.loginAs(t, fakeapi.SeedSecretario)

	identity, ok := f.mgr.Identity()
	require.True(t, ok)
	require.Equal(t, roles.Secretario, identity.Role)
	require.NotEmpty(t, identity.Tenant())

	tree := navigation.Resolve(identity.Role)
	var ids []string
	for _, item := range tree.Main {
		ids = append(ids, item.ID)
	}
	require.Equal(t, []string{"dashboard", "usuarios", "transacoes", "lancamentos"}, ids)
	require.Contains(t, tree.Main[1].Submenu, navigation.SubItem{Label: "Novo Usuario", Path: "/usuarios/novo", Highlight: true})
	require.NotContains(t, ids, "clientes")
}

func TestLoginRejections(t *testing.T) {
	f := setupTestFixture(t)
	auth := session.NewRemoteAuth(apiclient.New(f.url))
	ctx := context.Background()

	_, err := auth.Login(ctx, fakeapi.SeedSecretario, "wrong-password")
	require.Equal(t, errors.KindAuthExpired, errors.KindOf(err))
	require.Equal(t, "Credenciais inválidas", errors.UserMessage(err))

	_, err = auth.Login(ctx, "not-an-email", "123")
	require.Equal(t, errors.KindUnknown, errors.KindOf(err))
	require.Equal(t, "Email inválido, Senha deve ter no mínimo 6 caracteres", errors.UserMessage(err))
}

func TestRefreshUsesCookieAndRotates(t *testing.T) {
	f := setupTestFixture(t)
	f.loginAs(t, fakeapi.SeedFinanceiro)
	first, err := f.mgr.Token()
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(time.Minute)
	require.NoError(t, f.mgr.Refresh(context.Background()))
	second, err := f.mgr.Token()
	require.NoError(t, err)
	require.NotEqual(t, first.AccessToken, second.AccessToken)

	// After logout the refresh cookie is gone.
	f.mgr.Logout(context.Background())
	_, err = session.NewRemoteAuth(f.client).Refresh(context.Background())
	require.Equal(t, errors.KindAuthExpired, errors.KindOf(err))
}

func TestExpiredAccessTokenClearsSession(t *testing.T) {
	f := setupTestFixture(t)
	f.loginAs(t, fakeapi.SeedSuperAdmin)

	f.clock.now = f.clock.now.Add(fakeapi.DefaultAccessTokenTTL + time.Second)
	_, err := users.NewAPI(f.client).List(context.Background(), "", "")
	require.ErrorIs(t, err, errors.ErrAuthExpired)
	require.False(t, f.mgr.IsAuthenticated())
	require.Equal(t, errors.MsgAuthExpired, f.mgr.LastError())
}

func TestUsersEndpoints(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	t.Run("secretario manages own tenant", func(t *testing.T) {
		f.loginAs(t, fakeapi.SeedSecretario)
		api := users.NewAPI(f.client)

		list, err := api.List(ctx, "", "")
		require.NoError(t, err)
		require.Len(t, list, 3)

		created, err := api.Create(ctx, users.CreateRequest{Email: "novo@saude.campinas.sp.gov.br", Nome: "Novo Usuário", Role: roles.Financeiro, Password: "segredo1"})
		require.NoError(t, err)
		identity, _ := f.mgr.Identity()
		require.Equal(t, identity.Tenant(), created.Tenant())

		_, err = api.Create(ctx, users.CreateRequest{Email: "novo@saude.campinas.sp.gov.br", Nome: "Outro", Role: roles.Visualizador, Password: "segredo1"})
		require.ErrorIs(t, err, errors.ErrConflict)
		require.Equal(t, "Email já cadastrado", errors.UserMessage(err))

		updated, err := api.Update(ctx, created.ID, users.UpdateRequest{Ativo: utils.Ptr(false)})
		require.NoError(t, err)
		require.False(t, updated.Ativo)

		filtered, err := api.List(ctx, roles.Financeiro, "novo")
		require.NoError(t, err)
		require.Len(t, filtered, 1)

		require.NoError(t, api.Delete(ctx, created.ID))
		_, err = api.Get(ctx, created.ID)
		require.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("visualizador is forbidden to write", func(t *testing.T) {
		f.loginAs(t, fakeapi.SeedVisualizador)
		_, err := users.NewAPI(f.client).Create(ctx, users.CreateRequest{Email: "x@y.com", Nome: "Xavier", Role: roles.Financeiro, Password: "segredo1"})
		require.ErrorIs(t, err, errors.ErrForbidden)
		require.True(t, f.mgr.IsAuthenticated())
	})

	t.Run("users cannot delete themselves", func(t *testing.T) {
		f.loginAs(t, fakeapi.SeedSuperAdmin)
		api := users.NewAPI(f.client)
		admins, err := api.List(ctx, "", "Administrador")
		require.NoError(t, err)
		require.Len(t, admins, 1)

		err = api.Delete(ctx, admins[0].ID)
		require.ErrorIs(t, err, errors.ErrUnknown)
		require.Equal(t, "Não é possível excluir o próprio usuário", errors.UserMessage(err))
	})
}

func TestTenantsEndpoints(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.loginAs(t, fakeapi.SeedSuperAdmin)
	api := tenants.NewAPI(f.client)

	list, err := api.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	created, err := api.Create(ctx, tenants.CreateRequest{
		Nome:         "Secretaria Municipal de Saúde de Sobral",
		CNPJ:         "12.345.678/0001-99",
		EmailContato: "contato@sobral.ce.gov.br",
		Cidade:       "Sobral",
		Estado:       "ce",
		Secretario:   &tenants.Secretario{Nome: "Carlos Lima", Email: "carlos@sobral.ce.gov.br", Senha: "segredo123"},
	})
	require.NoError(t, err)
	require.Equal(t, "CE", created.Tenant.Estado)
	require.NotNil(t, created.Secretario)
	require.Equal(t, created.Tenant.ID, created.Secretario.TenantID)

	_, err = api.Create(ctx, tenants.CreateRequest{Nome: "Duplicada", CNPJ: "12.345.678/0001-99", EmailContato: "dup@x.gov.br"})
	require.ErrorIs(t, err, errors.ErrConflict)

	updated, err := api.Update(ctx, created.Tenant.ID, tenants.UpdateRequest{Ativo: utils.Ptr(false)})
	require.NoError(t, err)
	require.False(t, updated.Ativo)

	require.NoError(t, api.Delete(ctx, created.Tenant.ID))
	_, err = api.Get(ctx, created.Tenant.ID)
	require.ErrorIs(t, err, errors.ErrNotFound)

	// The secretário went with the tenant.
	auth := session.NewRemoteAuth(apiclient.New(f.url))
	_, err = auth.Login(ctx, "carlos@sobral.ce.gov.br", "segredo123")
	require.ErrorIs(t, err, errors.ErrAuthExpired)

	f.loginAs(t, fakeapi.SeedSecretario)
	_, err = tenants.NewAPI(f.client).List(ctx)
	require.ErrorIs(t, err, errors.ErrForbidden)
}

func TestLancamentosEndpoints(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	year := f.clock.now.Year()

	f.loginAs(t, fakeapi.SeedSuperAdmin)
	api := lancamentos.NewAPI(f.client)

	all, err := api.List(ctx, lancamentos.Filters{Limit: 100})
	require.NoError(t, err)
	require.Equal(t, 48, all.Pagination.Total)

	page, err := api.List(ctx, lancamentos.Filters{CNPJ: "46.068.425/0001-33", Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 24, page.Pagination.Total)
	require.Equal(t, 3, page.Pagination.TotalPages)
	require.Len(t, page.Data, 10)

	// A partial CNPJ is not forwarded, so nothing is filtered out.
	partial, err := api.List(ctx, lancamentos.Filters{CNPJ: "46.068", Limit: 1})
	require.NoError(t, err)
	require.Equal(t, 48, partial.Pagination.Total)

	byUF, err := api.List(ctx, lancamentos.Filters{UF: "pe", Ano: year, SortBy: "mes", SortOrder: lancamentos.SortAsc})
	require.NoError(t, err)
	require.Equal(t, 12, byUF.Pagination.Total)
	require.Equal(t, 1, byUF.Data[0].Mes)

	stats, err := api.Stats(ctx, lancamentos.Filters{Municipio: "campinas"})
	require.NoError(t, err)
	require.Equal(t, 24, stats.TotalLancamentos)
	require.Equal(t, []int{year, year - 1}, stats.Anos)
	require.Equal(t, lancamentos.Period{Ano: year, Mes: 12}, stats.PeriodoMaisRecente)
	require.NotEmpty(t, stats.TiposRepasse)
	require.Len(t, stats.ContasBancarias, 3)

	entry, err := api.Get(ctx, page.Data[0].ID)
	require.NoError(t, err)
	require.Equal(t, page.Data[0], entry)

	// Tenant users only see their own tenant.
	f.loginAs(t, fakeapi.SeedVisualizador)
	scoped, err := lancamentos.NewAPI(f.client).List(ctx, lancamentos.Filters{})
	require.NoError(t, err)
	require.Equal(t, 24, scoped.Pagination.Total)
	require.Equal(t, 20, scoped.Pagination.Limit)
}
