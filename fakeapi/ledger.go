package fakeapi

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/safisaude-console/cnpj"
	"github.com/jrsteele09/safisaude-console/lancamentos"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var errLancamentoNotFound = errors.New("lancamento not found")

type compareFunc func(a, b *lancamentos.Lancamento) int

var sortKeys = map[string]compareFunc{
	"ano": func(a, b *lancamentos.Lancamento) int {
		return cmp.Or(cmp.Compare(a.Ano, b.Ano), cmp.Compare(a.Mes, b.Mes))
	},
	"mes":          func(a, b *lancamentos.Lancamento) int { return cmp.Compare(a.Mes, b.Mes) },
	"valorBruto":   func(a, b *lancamentos.Lancamento) int { return cmp.Compare(a.ValorBruto, b.ValorBruto) },
	"valorLiquido": func(a, b *lancamentos.Lancamento) int { return cmp.Compare(a.ValorLiquido, b.ValorLiquido) },
	"municipio":    func(a, b *lancamentos.Lancamento) int { return strings.Compare(a.Municipio, b.Municipio) },
	"uf":           func(a, b *lancamentos.Lancamento) int { return strings.Compare(a.UF, b.UF) },
	"tpRepasse":    func(a, b *lancamentos.Lancamento) int { return strings.Compare(a.TpRepasse, b.TpRepasse) },
	"criadoEm":     func(a, b *lancamentos.Lancamento) int { return a.CriadoEm.Compare(b.CriadoEm) },
}

// Ledger is the in-memory lançamento table. Entries are never modified once
// added.
type Ledger struct {
	lock    sync.RWMutex
	entries []lancamentos.Lancamento
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Add stores entry, assigning an id when it has none.
func (l *Ledger) Add(entry lancamentos.Lancamento) lancamentos.Lancamento {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CNPJ = cnpj.Strip(entry.CNPJ)
	l.lock.Lock()
	defer l.lock.Unlock()
	l.entries = append(l.entries, entry)
	return entry
}

// Get returns the entry with id if it belongs to tenantID. An empty tenantID
// sees every entry.
func (l *Ledger) Get(tenantID, id string) (lancamentos.Lancamento, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()
	for _, e := range l.entries {
		if e.ID == id && inScope(&e, tenantID) {
			return e, nil
		}
	}
	return lancamentos.Lancamento{}, errors.Wrapf(errLancamentoNotFound, "id %s", id)
}

// Query filters, sorts and paginates the entries visible to tenantID.
func (l *Ledger) Query(tenantID string, f lancamentos.Filters) lancamentos.Page {
	matched := l.match(tenantID, f)

	compare, ok := sortKeys[f.SortBy]
	if !ok {
		compare = sortKeys["ano"]
		if f.SortOrder == "" {
			f.SortOrder = lancamentos.SortDesc
		}
	}
	slices.SortStableFunc(matched, func(a, b lancamentos.Lancamento) int {
		if f.SortOrder == lancamentos.SortDesc {
			return compare(&b, &a)
		}
		return compare(&a, &b)
	})

	page := max(f.Page, 1)
	limit := f.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	limit = min(limit, maxPageLimit)

	total := len(matched)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	data := make([]lancamentos.Lancamento, end-start)
	copy(data, matched[start:end])

	return lancamentos.Page{
		Data: data,
		Pagination: lancamentos.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}
}

// Stats aggregates the entries visible to tenantID that match f. Pagination
// and sorting fields of f are ignored.
func (l *Ledger) Stats(tenantID string, f lancamentos.Filters) lancamentos.Stats {
	stats := lancamentos.Stats{
		Anos:            []int{},
		TiposRepasse:    []lancamentos.TipoRepasseTotal{},
		ContasBancarias: []lancamentos.ContaBancariaTotal{},
	}
	tipos := map[string]int{}
	contas := map[lancamentos.ContaBancariaTotal]int{}

	for _, e := range l.match(tenantID, f) {
		stats.TotalLancamentos++
		stats.ValorTotalBruto += e.ValorBruto
		stats.ValorTotalLiquido += e.ValorLiquido
		if latest := stats.PeriodoMaisRecente; e.Ano > latest.Ano || (e.Ano == latest.Ano && e.Mes > latest.Mes) {
			stats.PeriodoMaisRecente = lancamentos.Period{Ano: e.Ano, Mes: e.Mes}
		}
		if !slices.Contains(stats.Anos, e.Ano) {
			stats.Anos = append(stats.Anos, e.Ano)
		}
		if e.TpRepasse != "" {
			tipos[e.TpRepasse]++
		}
		if e.Banco != "" {
			contas[lancamentos.ContaBancariaTotal{Banco: e.Banco, Agencia: e.Agencia, Conta: e.Conta}]++
		}
	}

	slices.SortFunc(stats.Anos, func(a, b int) int { return cmp.Compare(b, a) })
	for tipo, total := range tipos {
		stats.TiposRepasse = append(stats.TiposRepasse, lancamentos.TipoRepasseTotal{Tipo: tipo, Total: total})
	}
	slices.SortFunc(stats.TiposRepasse, func(a, b lancamentos.TipoRepasseTotal) int {
		return cmp.Or(cmp.Compare(b.Total, a.Total), strings.Compare(a.Tipo, b.Tipo))
	})
	for conta, total := range contas {
		conta.Total = total
		stats.ContasBancarias = append(stats.ContasBancarias, conta)
	}
	slices.SortFunc(stats.ContasBancarias, func(a, b lancamentos.ContaBancariaTotal) int {
		return cmp.Or(
			cmp.Compare(b.Total, a.Total),
			strings.Compare(a.Banco, b.Banco),
			strings.Compare(a.Agencia, b.Agencia),
			strings.Compare(a.Conta, b.Conta),
		)
	})
	return stats
}

func (l *Ledger) match(tenantID string, f lancamentos.Filters) []lancamentos.Lancamento {
	l.lock.RLock()
	defer l.lock.RUnlock()

	digits, hasCNPJ := cnpj.Normalize(f.CNPJ)
	municipio := strings.ToLower(f.Municipio)
	search := strings.ToLower(f.Search)
	uf := strings.ToUpper(f.UF)

	out := make([]lancamentos.Lancamento, 0)
	for i := range l.entries {
		e := &l.entries[i]
		switch {
		case !inScope(e, tenantID),
			f.Ano != 0 && e.Ano != f.Ano,
			f.Mes != 0 && e.Mes != f.Mes,
			f.TpRepasse != "" && e.TpRepasse != f.TpRepasse,
			f.Banco != "" && e.Banco != f.Banco,
			f.Agencia != "" && e.Agencia != f.Agencia,
			f.Conta != "" && e.Conta != f.Conta,
			hasCNPJ && e.CNPJ != digits,
			municipio != "" && !strings.Contains(strings.ToLower(e.Municipio), municipio),
			uf != "" && e.UF != uf,
			search != "" && !matchesSearch(e, search):
			continue
		}
		out = append(out, *e)
	}
	return out
}

func matchesSearch(e *lancamentos.Lancamento, search string) bool {
	for _, field := range []string{e.Municipio, e.Entidade, e.Programa, e.Componente, e.Bloco, e.NuProcesso} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func inScope(e *lancamentos.Lancamento, tenantID string) bool {
	return tenantID == "" || (e.TenantID != nil && *e.TenantID == tenantID)
}
