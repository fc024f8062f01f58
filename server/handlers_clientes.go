package server

import (
	"net/http"

	"github.com/jrsteele09/safisaude-console/tenants"
)

const (
	msgClienteCreated = "Cliente criado com sucesso!"
	msgClienteUpdated = "Cliente atualizado com sucesso!"
	msgClienteDeleted = "Cliente deletado com sucesso"
)

type clientesView struct {
	Clientes []tenants.Tenant `json:"clientes"`
	Estados  []tenants.State  `json:"estados"`
}

func (s *Server) ClientesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := consoleFrom(r).Tenants.List(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		render(w, r, http.StatusOK, clientesView{Clientes: list, Estados: tenants.States})
	}
}

func (s *Server) ClienteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, err := consoleFrom(r).Tenants.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		render(w, r, http.StatusOK, tenant)
	}
}

// ClienteCreateHandler creates a tenant and, when the form carries one, its
// first secretário.
func (s *Server) ClienteCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		var req tenants.CreateRequest
		if err := decodeBody(r, &req); err != nil {
			writeBadBody(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			handleError(w, r, err)
			return
		}
		created, err := c.Tenants.Create(r.Context(), req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		c.Flash(r.Context(), SeveritySuccess, msgClienteCreated)
		render(w, r, http.StatusCreated, created)
	}
}

func (s *Server) ClienteUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		var req tenants.UpdateRequest
		if err := decodeBody(r, &req); err != nil {
			writeBadBody(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			handleError(w, r, err)
			return
		}
		tenant, err := c.Tenants.Update(r.Context(), r.PathValue("id"), req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		c.Flash(r.Context(), SeveritySuccess, msgClienteUpdated)
		render(w, r, http.StatusOK, tenant)
	}
}

func (s *Server) ClienteDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		if err := c.Tenants.Delete(r.Context(), r.PathValue("id")); err != nil {
			handleError(w, r, err)
			return
		}
		c.Flash(r.Context(), SeveritySuccess, msgClienteDeleted)
		render(w, r, http.StatusOK, nil)
	}
}
