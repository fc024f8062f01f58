package apiclient_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jrsteele09/safisaude-console/apiclient"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/kvstore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) {
	return nil, fmt.Errorf("no session")
}

func setupTestFixture(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *apiclient.Client) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, apiclient.New(srv.URL + "/api")
}

func TestBearerAttachment(t *testing.T) {
	var gotAuth string
	_, c := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	t.Run("no token source", func(t *testing.T) {
		require.NoError(t, c.Get(context.Background(), "/users", nil, nil))
		require.Empty(t, gotAuth)
	})

	t.Run("token present", func(t *testing.T) {
		c.SetTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "abc"}))
		require.NoError(t, c.Get(context.Background(), "/users", nil, nil))
		require.Equal(t, "Bearer abc", gotAuth)
	})

	t.Run("token source without session", func(t *testing.T) {
		c.SetTokenSource(failingSource{})
		require.NoError(t, c.Get(context.Background(), "/users", nil, nil))
		require.Empty(t, gotAuth)
	})
}

func TestRequestShape(t *testing.T) {
	var (
		gotMethod, gotPath, gotQuery, gotType string
		gotBody                                map[string]any
	)
	_, c := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotQuery = r.Method, r.URL.Path, r.URL.RawQuery
		gotType = r.Header.Get("Content-Type")
		gotBody = nil
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"u1","nome":"Ana"}`))
	})
	ctx := context.Background()

	var out struct {
		ID   string `json:"id"`
		Nome string `json:"nome"`
	}
	require.NoError(t, c.Get(ctx, "users", url.Values{"role": {"FINANCEIRO"}}, &out))
	require.Equal(t, http.MethodGet, gotMethod)
	require.Equal(t, "/api/users", gotPath)
	require.Equal(t, "role=FINANCEIRO", gotQuery)
	require.Equal(t, "u1", out.ID)

	require.NoError(t, c.Patch(ctx, "/users/u1", map[string]any{"ativo": false}, &out))
	require.Equal(t, http.MethodPatch, gotMethod)
	require.Equal(t, "application/json", gotType)
	require.Equal(t, false, gotBody["ativo"])

	require.NoError(t, c.Put(ctx, "/tenants/t1", map[string]any{"nome": "X"}, nil))
	require.Equal(t, http.MethodPut, gotMethod)

	require.NoError(t, c.Delete(ctx, "/tenants/t1"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/api/tenants/t1", gotPath)
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		status  int
		body    string
		kind    errors.Kind
		message string
	}{
		{400, ``, errors.KindUnknown, errors.MsgBadRequest},
		{401, ``, errors.KindAuthExpired, errors.MsgAuthExpired},
		{403, `{}`, errors.KindForbidden, errors.MsgForbidden},
		{404, ``, errors.KindNotFound, errors.MsgNotFound},
		{409, ``, errors.KindConflict, errors.MsgConflict},
		{422, ``, errors.KindUnknown, errors.MsgUnprocessable},
		{500, `not json`, errors.KindServer, errors.MsgServer},
		{503, ``, errors.KindServer, errors.MsgUnknown},
		{418, ``, errors.KindUnknown, errors.MsgUnknown},
		{409, `{"message":"Email já cadastrado","statusCode":409}`, errors.KindConflict, "Email já cadastrado"},
		{400, `{"message":["nome curto","email inválido"]}`, errors.KindUnknown, "nome curto, email inválido"},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d %s", tc.status, tc.body), func(t *testing.T) {
			_, c := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			err := c.Get(context.Background(), "/x", nil, nil)
			require.Error(t, err)

			var apiErr *errors.APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tc.kind, apiErr.Kind)
			require.Equal(t, tc.status, apiErr.Status)
			require.Equal(t, tc.message, apiErr.Message)
			require.Equal(t, tc.message, errors.UserMessage(err))
		})
	}
}

func TestUnauthorizedHook(t *testing.T) {
	status := http.StatusOK
	_, c := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
	calls := 0
	c.OnUnauthorized(func() { calls++ })

	require.NoError(t, c.Get(context.Background(), "/x", nil, nil))
	require.Equal(t, 0, calls)

	status = http.StatusForbidden
	require.ErrorIs(t, c.Get(context.Background(), "/x", nil, nil), errors.ErrForbidden)
	require.Equal(t, 0, calls)

	status = http.StatusUnauthorized
	require.ErrorIs(t, c.Get(context.Background(), "/x", nil, nil), errors.ErrAuthExpired)
	require.Equal(t, 1, calls)
}

func TestNetworkError(t *testing.T) {
	srv, c := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	err := c.Get(context.Background(), "/x", nil, nil)
	require.ErrorIs(t, err, errors.ErrNetwork)
	require.Equal(t, errors.MsgNetwork, errors.UserMessage(err))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	c := apiclient.New(srv.URL, apiclient.WithMetrics(apiclient.NewMetrics(reg)))

	require.NoError(t, c.Get(context.Background(), "/a", nil, nil))
	fail = true
	require.Error(t, c.Get(context.Background(), "/a", nil, nil))

	count, err := testutil.GatherAndCount(reg, "safisaude_console_remote_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestStoreJarSurvivesRestart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "r1", Path: "/api/auth", HttpOnly: true, MaxAge: 3600})
		case "/api/auth/refresh":
			c, err := r.Cookie("refresh_token")
			if err != nil || c.Value != "r1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	jar, err := apiclient.NewStoreJar(ctx, store)
	require.NoError(t, err)
	first := apiclient.New(srv.URL+"/api", apiclient.WithCookieJar(jar))
	require.NoError(t, first.Post(ctx, "/auth/login", map[string]string{}, nil))

	reloaded, err := apiclient.NewStoreJar(ctx, store)
	require.NoError(t, err)
	second := apiclient.New(srv.URL+"/api", apiclient.WithCookieJar(reloaded))
	require.NoError(t, second.Post(ctx, "/auth/refresh", map[string]string{}, nil))

	empty, err := apiclient.NewStoreJar(ctx, kvstore.NewMemoryStore())
	require.NoError(t, err)
	third := apiclient.New(srv.URL+"/api", apiclient.WithCookieJar(empty))
	require.ErrorIs(t, third.Post(ctx, "/auth/refresh", map[string]string{}, nil), errors.ErrAuthExpired)
}
