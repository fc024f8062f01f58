package fakeapi

import (
	"net/http"

	"github.com/jrsteele09/safisaude-console/lancamentos"
	"github.com/jrsteele09/safisaude-console/users"
)

func (s *Server) listLancamentos(w http.ResponseWriter, r *http.Request, caller *users.User) {
	filters := lancamentos.ParseFilters(r.URL.Query())
	writeJSON(w, http.StatusOK, s.ledger.Query(scope(caller), filters))
}

func (s *Server) lancamentosStats(w http.ResponseWriter, r *http.Request, caller *users.User) {
	filters := lancamentos.ParseFilters(r.URL.Query())
	writeJSON(w, http.StatusOK, s.ledger.Stats(scope(caller), filters))
}

func (s *Server) getLancamento(w http.ResponseWriter, r *http.Request, caller *users.User) {
	entry, err := s.ledger.Get(scope(caller), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Lançamento não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
