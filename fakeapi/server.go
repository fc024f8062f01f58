// Package fakeapi is an in-memory implementation of the SAFISAUDE REST API,
// used for local development and integration tests of the console.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/tenants"
	tenantrepofakes "github.com/jrsteele09/safisaude-console/tenants/repofakes"
	"github.com/jrsteele09/safisaude-console/users"
	fakeuserrepo "github.com/jrsteele09/safisaude-console/users/repofake"
	"github.com/jrsteele09/safisaude-console/validation"
)

const (
	// BasePath is where the API is mounted.
	BasePath = "/api"

	RefreshCookie = "refresh_token"

	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Server serves the fake API.
type Server struct {
	mux     *http.ServeMux
	routes  []string
	users   users.Repo
	tenants tenants.Repo
	ledger  *Ledger
	refresh *RefreshTokens
	signer  *Signer

	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	nowTime    func() time.Time
}

type Option func(*Server)

// WithNowTime sets the clock (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Server) {
		s.nowTime = nowFunc
	}
}

func WithAccessTokenTTL(d time.Duration) Option {
	return func(s *Server) {
		s.accessTTL = d
	}
}

func WithRefreshTokenTTL(d time.Duration) Option {
	return func(s *Server) {
		s.refreshTTL = d
	}
}

// New creates an empty fake API signing tokens with secret. Call Seed to
// load the demo data.
func New(secret string, options ...Option) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		users:      fakeuserrepo.NewFakeUserRepo(),
		tenants:    tenantrepofakes.NewFakeTenantRepo(),
		ledger:     NewLedger(),
		secret:     secret,
		accessTTL:  DefaultAccessTokenTTL,
		refreshTTL: DefaultRefreshTokenTTL,
		nowTime:    time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	s.signer = NewSigner(s.secret, s.accessTTL, s.nowTime)
	s.refresh = NewRefreshTokens(s.refreshTTL, s.nowTime)
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Ledger exposes the lançamento table so tests can add entries.
func (s *Server) Ledger() *Ledger {
	return s.ledger
}

// Routes lists the registered patterns.
func (s *Server) Routes() []string {
	return s.routes
}

func (s *Server) initRoutes() {
	s.handle("POST /auth/login", s.login)
	s.handle("POST /auth/refresh", s.refreshToken)
	s.handle("POST /auth/logout", s.logout)

	s.handle("GET /users", s.authed(s.listUsers))
	s.handle("POST /users", s.authed(s.createUser))
	s.handle("GET /users/{id}", s.authed(s.getUser))
	s.handle("PATCH /users/{id}", s.authed(s.updateUser))
	s.handle("DELETE /users/{id}", s.authed(s.deleteUser))

	s.handle("GET /tenants", s.authed(s.listTenants))
	s.handle("POST /tenants", s.authed(s.createTenant))
	s.handle("GET /tenants/{id}", s.authed(s.getTenant))
	s.handle("PUT /tenants/{id}", s.authed(s.updateTenant))
	s.handle("DELETE /tenants/{id}", s.authed(s.deleteTenant))

	s.handle("GET /lancamentos", s.authed(s.listLancamentos))
	s.handle("GET /lancamentos/stats", s.authed(s.lancamentosStats))
	s.handle("GET /lancamentos/{id}", s.authed(s.getLancamento))
}

func (s *Server) handle(pattern string, handler http.HandlerFunc) {
	method, path, _ := strings.Cut(pattern, " ")
	full := method + " " + BasePath + path
	s.routes = append(s.routes, full)
	s.mux.HandleFunc(full, handler)
}

// authedHandler receives the user the bearer token belongs to.
type authedHandler func(w http.ResponseWriter, r *http.Request, caller *users.User)

// authed rejects requests without a valid bearer token, or whose user no
// longer exists or was deactivated.
func (s *Server) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Token não fornecido")
			return
		}
		claims, err := s.signer.Verify(raw)
		if err != nil {
			log.Debug().Err(err).Msg("rejected bearer token")
			writeError(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}
		caller, err := s.users.GetByID(claims.Subject)
		if err != nil || !caller.Ativo {
			writeError(w, http.StatusUnauthorized, "Usuário não encontrado ou inativo")
			return
		}
		next(w, r, caller)
	}
}

// errorBody is the error envelope of the API. Message is a string or a list
// of strings.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message any) {
	writeJSON(w, status, errorBody{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	})
}

// writeValidation reports form errors as a 400 with one message per field.
func writeValidation(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	messages := make([]string, 0, len(verrs))
	for _, field := range verrs.Fields() {
		messages = append(messages, verrs[field])
	}
	if len(messages) == 1 {
		writeError(w, http.StatusBadRequest, messages[0])
		return
	}
	writeError(w, http.StatusBadRequest, messages)
}

// writeRepoError maps repository sentinels onto statuses.
func writeRepoError(w http.ResponseWriter, err error, notFound, conflict string) {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, errors.ErrConflict):
		writeError(w, http.StatusConflict, conflict)
	default:
		log.Err(err).Msg("repository failure")
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
