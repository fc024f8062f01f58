package fakeapi

import (
	"net/http"

	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/internal/utils"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/users"
)

const (
	msgForbidden        = "Acesso negado"
	msgUserNotFound     = "Usuário não encontrado"
	msgEmailTaken       = "Email já cadastrado"
	msgInvalidBody      = "Corpo da requisição inválido"
	msgCannotDeleteSelf = "Não é possível excluir o próprio usuário"
	msgCannotDeleteRoot = "Não é possível excluir um Super Admin"
)

// scope is the tenant a caller is confined to, or "" for platform roles.
func scope(caller *users.User) string {
	if caller.Role.IsPlatform() {
		return ""
	}
	return caller.Tenant()
}

func canManageUsers(caller *users.User) bool {
	return caller.HasRole(roles.SuperAdmin, roles.Secretario)
}

// visibleUser loads id and hides users outside the caller's tenant.
func (s *Server) visibleUser(caller *users.User, id string) (*users.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tenant := scope(caller); tenant != "" && user.Tenant() != tenant {
		return nil, errors.Wrapf(errors.ErrNotFound, "user %s", id)
	}
	return user, nil
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request, caller *users.User) {
	list, err := s.users.List(users.ListFilter{
		TenantID: scope(caller),
		Role:     roles.Role(r.URL.Query().Get("role")),
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		writeRepoError(w, err, msgUserNotFound, msgEmailTaken)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request, caller *users.User) {
	user, err := s.visibleUser(caller, r.PathValue("id"))
	if err != nil {
		writeRepoError(w, err, msgUserNotFound, msgEmailTaken)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// createUser adds a user to the caller's own tenant; users created by a
// platform administrator have no tenant.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request, caller *users.User) {
	if !canManageUsers(caller) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	var req users.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidation(w, err)
		return
	}
	tenant := scope(caller)
	if tenant != "" && req.Role.IsPlatform() {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}

	hash, err := users.HashPassword(req.Password)
	if err != nil {
		writeRepoError(w, err, msgUserNotFound, msgEmailTaken)
		return
	}
	user := &users.User{
		Email:        req.Email,
		Nome:         req.Nome,
		Role:         req.Role,
		Ativo:        true,
		PasswordHash: hash,
	}
	if tenant != "" {
		user.TenantID = &tenant
	}
	if err := s.users.Upsert(user); err != nil {
		writeRepoError(w, err, msgUserNotFound, msgEmailTaken)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request, caller *users.User) {
	if !canManageUsers(caller) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	user, err := s.visibleUser(caller, r.PathValue("id"))
	if err != nil {
		writeRepoError(w, err, msgUserNotFound, msgEmailTaken)
		return
	}
	var req users.UpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidation(w, err)
		return
	}
	if req.Role != nil && scope(caller) != "" && req.Role.IsPlatform() {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}

	utils.Set(&user.Nome, req.Nome)
	utils.Set(&user.Role, req.Role)
	if utils.Set(&user.Ativo, req.Ativo) && !user.Ativo {
		s.refresh.RevokeUser(user.ID)
	}
	if err := s.users.Upsert(user); err != nil {
		writeRepoError(w, err, msgUserNotFound, msgEmailTaken)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request, caller *users.User) {
	if !canManageUsers(caller) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	user, err := s.visibleUser(caller, r.PathValue("id"))
	if err != nil {
		writeRepoError(w, err, msgUserNotFound, msgEmailTaken)
		return
	}
	switch {
	case user.ID == caller.ID:
		writeError(w, http.StatusBadRequest, msgCannotDeleteSelf)
		return
	case !users.CanDelete(*user):
		writeError(w, http.StatusForbidden, msgCannotDeleteRoot)
		return
	}
	if err := s.users.Delete(user.ID); err != nil {
		writeRepoError(w, err, msgUserNotFound, msgEmailTaken)
		return
	}
	s.refresh.RevokeUser(user.ID)
	w.WriteHeader(http.StatusNoContent)
}
