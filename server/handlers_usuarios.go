package server

import (
	"net/http"

	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/users"
)

const (
	msgUsuarioCreated     = "Usuário criado com sucesso!"
	msgUsuarioUpdated     = "Usuário atualizado com sucesso!"
	msgUsuarioDeleted     = "Usuário deletado com sucesso!"
	msgSuperAdminNoEdit   = "Não é possível editar Super Admin"
	msgSuperAdminNoDelete = "Super Admins não podem ser deletados."
)

// usuarioRow is a user with the actions the console offers for it.
type usuarioRow struct {
	users.User
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
}

type usuariosView struct {
	Usuarios []usuarioRow `json:"usuarios"`
	Perfis   []roleOption `json:"perfis"` // Roles a new user may be given
}

type roleOption struct {
	Value roles.Role `json:"value"`
	Label string     `json:"label"`
}

func newUsuarioRow(u users.User) usuarioRow {
	return usuarioRow{User: u, CanEdit: users.CanEdit(u), CanDelete: users.CanDelete(u)}
}

func assignableOptions() []roleOption {
	assignable := roles.Assignables()
	options := make([]roleOption, len(assignable))
	for i, role := range assignable {
		options[i] = roleOption{Value: role, Label: role.DisplayName()}
	}
	return options
}

// UsuariosListHandler lists users, narrowed by ?role= and ?search=. An
// unknown role is ignored.
func (s *Server) UsuariosListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		role, _ := roles.Parse(query.Get("role"))

		list, err := consoleFrom(r).Users.List(r.Context(), role, query.Get("search"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		rows := make([]usuarioRow, len(list))
		for i, u := range list {
			rows[i] = newUsuarioRow(u)
		}
		render(w, r, http.StatusOK, usuariosView{Usuarios: rows, Perfis: assignableOptions()})
	}
}

// UsuarioHandler loads a user for the edit form. Super admins cannot be
// edited, so asking for one sends the console back to the list.
func (s *Server) UsuarioHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		user, err := c.Users.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		if user.Role == roles.SuperAdmin {
			c.Flash(r.Context(), SeverityError, msgSuperAdminNoEdit)
			redirect(w, r, RouteUsuarios)
			return
		}
		render(w, r, http.StatusOK, newUsuarioRow(user))
	}
}

func (s *Server) UsuarioCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		var req users.CreateRequest
		if err := decodeBody(r, &req); err != nil {
			writeBadBody(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			handleError(w, r, err)
			return
		}
		user, err := c.Users.Create(r.Context(), req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		c.Flash(r.Context(), SeveritySuccess, msgUsuarioCreated)
		render(w, r, http.StatusCreated, newUsuarioRow(user))
	}
}

func (s *Server) UsuarioUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		var req users.UpdateRequest
		if err := decodeBody(r, &req); err != nil {
			writeBadBody(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			handleError(w, r, err)
			return
		}

		id := r.PathValue("id")
		target, err := c.Users.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		if target.Role == roles.SuperAdmin {
			writeJSON(w, http.StatusForbidden, envelope{
				Notification: &Notification{Severity: SeverityError, Message: msgSuperAdminNoEdit},
			})
			return
		}

		user, err := c.Users.Update(r.Context(), id, req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		c.Flash(r.Context(), SeveritySuccess, msgUsuarioUpdated)
		render(w, r, http.StatusOK, newUsuarioRow(user))
	}
}

func (s *Server) UsuarioDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		id := r.PathValue("id")
		target, err := c.Users.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		if !users.CanDelete(target) {
			writeJSON(w, http.StatusForbidden, envelope{
				Notification: &Notification{Severity: SeverityError, Message: msgSuperAdminNoDelete},
			})
			return
		}

		if err := c.Users.Delete(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		c.Flash(r.Context(), SeveritySuccess, msgUsuarioDeleted)
		render(w, r, http.StatusOK, nil)
	}
}
