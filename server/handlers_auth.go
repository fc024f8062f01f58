package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/guard"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/validation"
)

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginView struct {
	AppName   string `json:"appName"`
	LastError string `json:"lastError,omitempty"` // Why the previous session ended
}

// IndexHandler sends the visitor to the dashboard or the login page.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if consoleFrom(r).Session.IsAuthenticated() {
			redirect(w, r, guard.LandingPath)
			return
		}
		redirect(w, r, guard.LoginPath)
	}
}

func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		if c.Session.IsAuthenticated() {
			redirect(w, r, guard.LandingPath)
			return
		}
		view := loginView{
			AppName:   s.config.GetAppName(),
			LastError: c.Session.LastError(),
		}
		c.Session.ClearError()
		render(w, r, http.StatusOK, view)
	}
}

// LoginHandler authenticates and sends the user back to the page they were
// denied, or to the dashboard.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		var form loginForm
		if err := decodeBody(r, &form); err != nil {
			writeBadBody(w, err)
			return
		}
		if err := validation.Login(form.Email, form.Password); err != nil {
			var errs validation.Errors
			errors.As(err, &errs)
			writeValidation(w, errs)
			return
		}

		user, err := c.Session.Login(r.Context(), form.Email, form.Password)
		if errors.Is(err, errors.ErrNotUnauthenticated) {
			redirect(w, r, guard.LandingPath)
			return
		}
		if err != nil {
			// 401 here means bad credentials, not an expired session
			log.Info().Err(err).Str("email", form.Email).Msg("login rejected")
			writeJSON(w, statusForKind(errors.KindOf(err)), envelope{
				Notification: &Notification{Severity: SeverityError, Message: errors.UserMessage(err)},
			})
			return
		}

		log.Info().Str("console", c.ID).Str("user", user.ID).Str("role", user.Role.String()).Msg("logged in")
		target, ok := c.Session.TakeRedirect(r.Context())
		if !ok {
			target = guard.LandingPath
		}
		redirect(w, r, target)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		c.Session.Logout(r.Context())
		s.consoles.Evict(c)
		redirect(w, r, guard.LoginPath)
	}
}
