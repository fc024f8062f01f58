package users_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/safisaude-console/apiclient"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/internal/utils"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/users"
	"github.com/jrsteele09/safisaude-console/validation"
	"github.com/stretchr/testify/require"
)

func TestCanDeleteAndEdit(t *testing.T) {
	for _, r := range roles.All {
		u := users.User{Role: r}
		require.Equal(t, r != roles.SuperAdmin, users.CanDelete(u), r)
		require.True(t, users.CanEdit(u), r)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("segredo123")
	require.NoError(t, err)
	u := users.User{PasswordHash: hash}
	require.True(t, u.CheckPassword("segredo123"))
	require.False(t, u.CheckPassword("errado"))
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	return verrs
}

func TestCreateRequestValidate(t *testing.T) {
	valid := users.CreateRequest{Email: "ana@saude.gov.br", Nome: "Ana Souza", Role: roles.Financeiro, Password: "segredo"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		edit  func(r *users.CreateRequest)
		field string
		msg   string
	}{
		{"empty nome", func(r *users.CreateRequest) { r.Nome = "" }, "nome", "Nome é obrigatório"},
		{"short nome", func(r *users.CreateRequest) { r.Nome = "Al" }, "nome", "Nome deve ter no mínimo 3 caracteres"},
		{"long nome", func(r *users.CreateRequest) { r.Nome = string(make([]byte, 101)) }, "nome", "Nome não pode exceder 100 caracteres"},
		{"super admin role", func(r *users.CreateRequest) { r.Role = roles.SuperAdmin }, "role", "Perfil inválido"},
		{"unknown role", func(r *users.CreateRequest) { r.Role = "ROOT" }, "role", "Perfil inválido"},
		{"bad email", func(r *users.CreateRequest) { r.Email = "ana" }, "email", "Email inválido"},
		{"short password", func(r *users.CreateRequest) { r.Password = "123" }, "password", "Senha deve ter no mínimo 6 caracteres"},
		{"long password", func(r *users.CreateRequest) { r.Password = string(make([]byte, 129)) }, "password", "Senha não pode exceder 128 caracteres"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.edit(&req)
			require.Equal(t, tc.msg, fieldErrors(t, req.Validate())[tc.field])
		})
	}
}

func TestUpdateValidation(t *testing.T) {
	require.NoError(t, users.UpdateRequest{}.Validate())
	require.NoError(t, users.UpdateRequest{Ativo: utils.Ptr(false)}.Validate())

	err := users.UpdateRequest{Role: utils.Ptr(roles.SuperAdmin)}.Validate()
	require.Equal(t, "Perfil inválido", fieldErrors(t, err)["role"])

	require.NoError(t, users.ValidateForm("Ana Souza", roles.Visualizador))
	require.Equal(t, "Nome deve ter no mínimo 3 caracteres", fieldErrors(t, users.ValidateForm("Al", roles.Visualizador))["nome"])
}

func TestAPI(t *testing.T) {
	var method, path, query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, query = r.Method, r.URL.Path, r.URL.RawQuery
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users":
			w.Write([]byte(`[{"id":"u1","email":"a@b.co","nome":"Ana","role":"FINANCEIRO","tenantId":"t1","ativo":true}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/users/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Write([]byte(`{"id":"u1","email":"a@b.co","nome":"Ana","role":"FINANCEIRO","ativo":false}`))
		}
	}))
	defer srv.Close()

	api := users.NewAPI(apiclient.New(srv.URL))
	ctx := context.Background()

	t.Run("list forwards role and search", func(t *testing.T) {
		list, err := api.List(ctx, roles.Financeiro, "ana")
		require.NoError(t, err)
		require.Equal(t, "role=FINANCEIRO&search=ana", query)
		require.Len(t, list, 1)
		require.Equal(t, "t1", list[0].Tenant())
	})

	t.Run("super admin role filter is dropped", func(t *testing.T) {
		_, err := api.List(ctx, roles.SuperAdmin, "")
		require.NoError(t, err)
		require.Empty(t, query)
	})

	t.Run("update uses patch", func(t *testing.T) {
		u, err := api.Update(ctx, "u1", users.UpdateRequest{Ativo: utils.Ptr(false)})
		require.NoError(t, err)
		require.Equal(t, http.MethodPatch, method)
		require.Equal(t, "/users/u1", path)
		require.False(t, u.Ativo)
	})

	t.Run("create and delete", func(t *testing.T) {
		_, err := api.Create(ctx, users.CreateRequest{Email: "a@b.co", Nome: "Ana", Role: roles.Financeiro, Password: "segredo"})
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, method)

		require.NoError(t, api.Delete(ctx, "u1"))
		require.Equal(t, http.MethodDelete, method)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := api.Get(ctx, "missing")
		require.ErrorIs(t, err, errors.ErrNotFound)
		require.Equal(t, errors.MsgNotFound, errors.UserMessage(err))
	})
}
