package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/lancamentos"
)

type lancamentosView struct {
	Filters lancamentos.Filters `json:"filters"`
	Page    lancamentos.Page    `json:"page"`
	Stats   lancamentos.Stats   `json:"stats"`
}

// LancamentosHandler loads one page of the ledger and the statistics for the
// same filters. A request overtaken by a newer one from the same console is
// answered with 204 and nothing to render.
func (s *Server) LancamentosHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := consoleFrom(r)
		filters := lancamentos.ParseFilters(r.URL.Query())

		page, err := c.Lancamentos.Load(r.Context(), filters)
		if err == nil {
			var stats lancamentos.Stats
			stats, err = c.Lancamentos.LoadStats(r.Context(), filters)
			if err == nil {
				render(w, r, http.StatusOK, lancamentosView{Filters: filters, Page: page, Stats: stats})
				return
			}
		}
		if errors.Is(err, lancamentos.ErrSuperseded) {
			log.Debug().Str("console", c.ID).Msg("lancamentos load superseded")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		handleError(w, r, err)
	}
}

func (s *Server) LancamentoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lancamento, err := consoleFrom(r).Ledger.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		render(w, r, http.StatusOK, lancamento)
	}
}
