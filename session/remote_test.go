package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/safisaude-console/apiclient"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/session"
)

func TestRemoteAuth(t *testing.T) {
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "login")
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Credenciais inválidas"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "r-1", Path: "/api/auth", HttpOnly: true})
		json.NewEncoder(w).Encode(session.LoginResponse{AccessToken: "a-1", User: secretario, ExpiresIn: 900})
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "refresh")
		if c, err := r.Cookie("refresh_token"); err != nil || c.Value != "r-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(session.RefreshResponse{AccessToken: "a-2", ExpiresIn: 900})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "logout")
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	auth := session.NewRemoteAuth(apiclient.New(srv.URL + "/api"))
	ctx := context.Background()

	_, err := auth.Login(ctx, secretario.Email, "wrong")
	require.Equal(t, "Credenciais inválidas", errors.UserMessage(err))

	resp, err := auth.Login(ctx, secretario.Email, "secret123")
	require.NoError(t, err)
	require.Equal(t, "a-1", resp.AccessToken)
	require.Equal(t, secretario, resp.User)
	require.EqualValues(t, 900, resp.ExpiresIn)

	refreshed, err := auth.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, "a-2", refreshed.AccessToken)

	require.NoError(t, auth.Logout(ctx))
	require.Equal(t, []string{"login", "login", "refresh", "logout"}, calls)
}
