package fakeapi

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/session"
	"github.com/jrsteele09/safisaude-console/users"
	"github.com/jrsteele09/safisaude-console/validation"
)

const msgInvalidCredentials = "Credenciais inválidas"

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validation.Login(body.Email, body.Password); err != nil {
		writeValidation(w, err)
		return
	}

	user, err := s.users.GetByEmail(body.Email)
	if err != nil || !user.CheckPassword(body.Password) {
		log.Info().Str("email", body.Email).Msg("login rejected")
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if !user.Ativo {
		writeError(w, http.StatusUnauthorized, "Usuário inativo")
		return
	}

	accessToken, expiresIn, ok := s.issueTokens(w, user)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.LoginResponse{
		AccessToken: accessToken,
		User:        *user,
		ExpiresIn:   expiresIn,
	})
}

func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "Refresh token não fornecido")
		return
	}
	userID, next, err := s.refresh.Rotate(cookie.Value)
	if err != nil {
		s.clearRefreshCookie(w)
		writeError(w, http.StatusUnauthorized, "Refresh token inválido ou expirado")
		return
	}
	user, err := s.users.GetByID(userID)
	if err != nil || !user.Ativo {
		s.refresh.Revoke(next)
		s.clearRefreshCookie(w)
		writeError(w, http.StatusUnauthorized, "Usuário não encontrado ou inativo")
		return
	}

	accessToken, expiresIn, err := s.signer.Issue(user)
	if err != nil {
		log.Err(err).Msg("failed to issue access token")
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	s.setRefreshCookie(w, next)
	writeJSON(w, http.StatusOK, session.RefreshResponse{AccessToken: accessToken, ExpiresIn: expiresIn})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(RefreshCookie); err == nil {
		s.refresh.Revoke(cookie.Value)
	}
	s.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// issueTokens signs an access token and sets a fresh refresh cookie. It
// writes the error response itself and reports false on failure.
func (s *Server) issueTokens(w http.ResponseWriter, user *users.User) (string, int64, bool) {
	accessToken, expiresIn, err := s.signer.Issue(user)
	if err != nil {
		log.Err(err).Msg("failed to issue access token")
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return "", 0, false
	}
	refreshToken, err := s.refresh.Create(user.ID)
	if err != nil {
		log.Err(err).Msg("failed to issue refresh token")
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return "", 0, false
	}
	s.setRefreshCookie(w, refreshToken)
	return accessToken, expiresIn, true
}

func (s *Server) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    token,
		Path:     BasePath + "/auth",
		MaxAge:   int(s.refreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     BasePath + "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
