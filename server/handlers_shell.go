package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/guard"
	"github.com/jrsteele09/safisaude-console/navigation"
	"github.com/jrsteele09/safisaude-console/users"
)

type navigationView struct {
	Tree      navigation.Tree `json:"tree"`
	Active    string          `json:"active"`    // Id of the highlighted item
	Collapsed bool            `json:"collapsed"` // Saved sidebar state
}

type dashboardView struct {
	User       users.User          `json:"user"`
	RoleTitle  string              `json:"roleTitle"`
	Dashboard  guard.DashboardKind `json:"dashboard"`
	ExpiresAt  time.Time           `json:"expiresAt"`
	Navigation navigationView      `json:"navigation"`
}

type sidebarForm struct {
	Collapsed *bool `json:"collapsed"` // nil toggles
}

type placeholderView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

func (c *Console) navigation(ctx context.Context, user users.User, current string) navigationView {
	tree := navigation.Resolve(user.Role)
	collapsed, err := c.Preferences.Collapsed(ctx)
	if err != nil {
		log.Err(err).Str("console", c.ID).Msg("failed to read sidebar preference")
	}
	return navigationView{
		Tree:      tree,
		Active:    tree.Active(current),
		Collapsed: collapsed,
	}
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		user := identityFrom(r)
		render(w, r, http.StatusOK, dashboardView{
			User:       user,
			RoleTitle:  navigation.RoleTitle(user.Role),
			Dashboard:  guard.Dashboard(user.Role),
			ExpiresAt:  c.Session.ExpiresAt(),
			Navigation: c.navigation(r.Context(), user, r.URL.Path),
		})
	}
}

// NavigationHandler returns the menus of the current user with the item for
// ?path= highlighted.
func (s *Server) NavigationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := r.URL.Query().Get("path")
		if current == "" {
			current = guard.LandingPath
		}
		render(w, r, http.StatusOK, consoleFrom(r).navigation(r.Context(), identityFrom(r), current))
	}
}

func (s *Server) SidebarPreferenceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		var form sidebarForm
		if r.ContentLength != 0 {
			if err := decodeBody(r, &form); err != nil {
				writeBadBody(w, err)
				return
			}
		}

		var (
			collapsed bool
			err       error
		)
		if form.Collapsed == nil {
			collapsed, err = c.Preferences.Toggle(r.Context())
		} else {
			collapsed = *form.Collapsed
			err = c.Preferences.SetCollapsed(r.Context(), collapsed)
		}
		if err != nil {
			log.Err(err).Str("console", c.ID).Msg("failed to save sidebar preference")
		}
		render(w, r, http.StatusOK, sidebarForm{Collapsed: &collapsed})
	}
}

// TransacoesHandler serves the transactions page, which has no content yet.
func (s *Server) TransacoesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, http.StatusOK, placeholderView{
			Title:       "Transações",
			Description: "Gerenciar transações do sistema",
			Status:      "Em Desenvolvimento",
			Message:     "A página de transações está sendo desenvolvida. Retorne em breve para gerenciar transações.",
		})
	}
}
