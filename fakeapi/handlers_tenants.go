package fakeapi

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/cnpj"
	"github.com/jrsteele09/safisaude-console/internal/utils"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/tenants"
	"github.com/jrsteele09/safisaude-console/users"
)

const (
	msgTenantNotFound = "Cliente não encontrado"
	msgCNPJTaken      = "CNPJ já cadastrado"
)

func (s *Server) listTenants(w http.ResponseWriter, r *http.Request, caller *users.User) {
	if !caller.Role.IsPlatform() {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	list, err := s.tenants.List()
	if err != nil {
		writeRepoError(w, err, msgTenantNotFound, msgCNPJTaken)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getTenant(w http.ResponseWriter, r *http.Request, caller *users.User) {
	if !caller.Role.IsPlatform() {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	tenant, err := s.tenants.Get(r.PathValue("id"))
	if err != nil {
		writeRepoError(w, err, msgTenantNotFound, msgCNPJTaken)
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

// createTenant registers a tenant and, when the request carries one, its
// first secretário.
func (s *Server) createTenant(w http.ResponseWriter, r *http.Request, caller *users.User) {
	if caller.Role != roles.SuperAdmin {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	var req tenants.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidation(w, err)
		return
	}
	if _, err := s.tenants.GetByCNPJ(req.CNPJ); err == nil {
		writeError(w, http.StatusConflict, msgCNPJTaken)
		return
	}

	var secretario *users.User
	if req.Secretario != nil {
		if _, err := s.users.GetByEmail(req.Secretario.Email); err == nil {
			writeError(w, http.StatusConflict, msgEmailTaken)
			return
		}
		hash, err := users.HashPassword(req.Secretario.Senha)
		if err != nil {
			writeRepoError(w, err, msgTenantNotFound, msgCNPJTaken)
			return
		}
		secretario = &users.User{
			Email:        req.Secretario.Email,
			Nome:         req.Secretario.Nome,
			Role:         roles.Secretario,
			Ativo:        true,
			PasswordHash: hash,
		}
	}

	now := s.nowTime()
	tenant := &tenants.Tenant{
		Nome:          req.Nome,
		CNPJ:          cnpj.Format(req.CNPJ),
		EmailContato:  req.EmailContato,
		Cidade:        req.Cidade,
		Estado:        strings.ToUpper(req.Estado),
		Ativo:         true,
		CriadoEm:      now,
		AtualizadoEm:  now,
		CriadoPor:     caller.ID,
		AtualizadoPor: caller.ID,
	}
	if err := s.tenants.Upsert(tenant); err != nil {
		writeRepoError(w, err, msgTenantNotFound, msgCNPJTaken)
		return
	}

	resp := tenants.CreateResponse{Tenant: *tenant}
	if secretario != nil {
		secretario.TenantID = &tenant.ID
		if err := s.users.Upsert(secretario); err != nil {
			if delErr := s.tenants.Delete(tenant.ID); delErr != nil {
				log.Err(delErr).Str("tenant", tenant.ID).Msg("failed to roll back tenant")
			}
			writeRepoError(w, err, msgTenantNotFound, msgEmailTaken)
			return
		}
		resp.Secretario = &tenants.CreatedSecretario{
			ID:       secretario.ID,
			Email:    secretario.Email,
			Nome:     secretario.Nome,
			Role:     string(secretario.Role),
			TenantID: tenant.ID,
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) updateTenant(w http.ResponseWriter, r *http.Request, caller *users.User) {
	if caller.Role != roles.SuperAdmin {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	tenant, err := s.tenants.Get(r.PathValue("id"))
	if err != nil {
		writeRepoError(w, err, msgTenantNotFound, msgCNPJTaken)
		return
	}
	var req tenants.UpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	utils.Set(&tenant.Nome, req.Nome)
	if req.CNPJ != nil {
		tenant.CNPJ = cnpj.Format(*req.CNPJ)
	}
	utils.Set(&tenant.EmailContato, req.EmailContato)
	utils.Set(&tenant.Cidade, req.Cidade)
	if req.Estado != nil {
		tenant.Estado = strings.ToUpper(*req.Estado)
	}
	utils.Set(&tenant.Ativo, req.Ativo)
	tenant.AtualizadoEm = s.nowTime()
	tenant.AtualizadoPor = caller.ID

	if err := s.tenants.Upsert(tenant); err != nil {
		writeRepoError(w, err, msgTenantNotFound, msgCNPJTaken)
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

// deleteTenant removes the tenant together with its users.
func (s *Server) deleteTenant(w http.ResponseWriter, r *http.Request, caller *users.User) {
	if caller.Role != roles.SuperAdmin {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	id := r.PathValue("id")
	if err := s.tenants.Delete(id); err != nil {
		writeRepoError(w, err, msgTenantNotFound, msgCNPJTaken)
		return
	}
	removed, err := s.users.DeleteByTenant(id)
	if err != nil {
		log.Err(err).Str("tenant", id).Msg("failed to remove tenant users")
	}
	log.Info().Str("tenant", id).Int("users", removed).Msg("tenant deleted")
	w.WriteHeader(http.StatusNoContent)
}
