package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/guard"
	"github.com/jrsteele09/safisaude-console/navigation"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyConsole stores the *Console of the request
	ContextKeyConsole ContextKey = "console"
	// ContextKeyIdentity stores the users.User admitted by RequireRole
	ContextKeyIdentity ContextKey = "identity"
)

const consoleCookieMaxAge = 30 * 24 * 3600

const (
	msgClientesRestricted = "Acesso restrito. Apenas Super Admin pode gerenciar clientes."
	msgUsuariosRestricted = "Acesso restrito. Apenas Super Admin pode gerenciar usuários."
)

// deniedMessages are shown instead of guard.MsgForbidden under these paths.
var deniedMessages = map[string]string{
	RouteClientes: msgClientesRestricted,
	RouteUsuarios: msgUsuariosRestricted,
}

func deniedMessage(path string) string {
	for prefix, msg := range deniedMessages {
		if navigation.Matches(prefix, path) {
			return msg
		}
	}
	return guard.MsgForbidden
}

// ConsoleSessionMiddleware binds the request to its console, issuing a new
// console cookie when the browser has none or names an id the server does not
// know. The console is held after the request only if it wrote state.
func (s *Server) ConsoleSessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookieName := s.config.GetSessionCookieName()
		var id string
		if cookie, err := r.Cookie(cookieName); err == nil {
			id = cookie.Value
		}

		console, err := s.consoles.Get(r.Context(), id)
		if err != nil {
			log.Err(err).Msg("failed to open console session")
			writeJSON(w, http.StatusInternalServerError, envelope{
				Notification: &Notification{Severity: SeverityError, Message: msgInternal},
			})
			return
		}
		if console.ID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    console.ID,
				Path:     "/",
				MaxAge:   consoleCookieMaxAge,
				HttpOnly: true,
				Secure:   getScheme(r) == "https",
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ContextKeyConsole, console)
		next(w, r.WithContext(ctx))
		s.consoles.Keep(r.Context(), console)
	}
}

func consoleFrom(r *http.Request) *Console {
	c, _ := r.Context().Value(ContextKeyConsole).(*Console)
	return c
}

// identityFrom returns the user admitted by RequireRole.
func identityFrom(r *http.Request) users.User {
	u, _ := r.Context().Value(ContextKeyIdentity).(users.User)
	return u
}

// RequireRole admits authenticated users whose role is in allowed; no roles
// admits any authenticated user. Anonymous visitors are sent to the login
// page with the path remembered, others to the dashboard with a warning.
func (s *Server) RequireRole(allowed ...roles.Role) middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			c := consoleFrom(r)
			var identity *users.User
			if u, ok := c.Session.Identity(); ok {
				identity = &u
			}

			decision := guard.Evaluate(identity, allowed...)
			switch decision {
			case guard.RedirectLogin:
				if r.Method == http.MethodGet {
					if err := c.Session.RememberRedirect(r.Context(), r.URL.RequestURI()); err != nil {
						log.Err(err).Str("console", c.ID).Msg("failed to remember redirect")
					}
				}
				redirect(w, r, decision.Target())
				return
			case guard.RedirectLanding:
				log.Info().
					Str("user", identity.ID).
					Str("role", identity.Role.String()).
					Str("path", r.URL.Path).
					Msg("access denied")
				c.Flash(r.Context(), SeverityWarning, deniedMessage(r.URL.Path))
				redirect(w, r, decision.Target())
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, *identity)
			next(w, r.WithContext(ctx))
		}
	}
}
