package lancamentos_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/safisaude-console/apiclient"
	"github.com/jrsteele09/safisaude-console/lancamentos"
	"github.com/stretchr/testify/require"
)

func TestFiltersQuery(t *testing.T) {
	t.Run("formatted cnpj is forwarded as digits", func(t *testing.T) {
		q := lancamentos.Filters{CNPJ: "12.345.678/0001-99"}.Query()
		require.Equal(t, "12345678000199", q.Get("cnpj"))
	})

	t.Run("short cnpj is dropped", func(t *testing.T) {
		q := lancamentos.Filters{CNPJ: "12.345.678/0001"}.Query()
		require.False(t, q.Has("cnpj"))
	})

	t.Run("uf upper-cased and municipio verbatim", func(t *testing.T) {
		q := lancamentos.Filters{UF: "sp", Municipio: "são Paulo"}.Query()
		require.Equal(t, "SP", q.Get("uf"))
		require.Equal(t, "são Paulo", q.Get("municipio"))
	})

	t.Run("zero values omitted", func(t *testing.T) {
		require.Empty(t, lancamentos.Filters{}.Query())
	})

	t.Run("stats drop paging and sort", func(t *testing.T) {
		f := lancamentos.Filters{Ano: 2024, Mes: 3, Page: 2, Limit: 20, SortBy: "valorBruto", SortOrder: lancamentos.SortDesc}
		require.Equal(t, url.Values{"ano": {"2024"}, "mes": {"3"}}, f.StatsQuery())

		q := f.Query()
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "20", q.Get("limit"))
		require.Equal(t, "valorBruto", q.Get("sortBy"))
		require.Equal(t, "DESC", q.Get("sortOrder"))
	})

	t.Run("parse is the inverse", func(t *testing.T) {
		f := lancamentos.Filters{Ano: 2023, Banco: "001", UF: "MG", Page: 3, SortOrder: lancamentos.SortAsc}
		require.Equal(t, f, lancamentos.ParseFilters(f.Query()))
	})
}

func TestMonthName(t *testing.T) {
	require.Equal(t, "Janeiro", lancamentos.MonthName(1))
	require.Equal(t, "Março", lancamentos.MonthName(3))
	require.Equal(t, "Dezembro", lancamentos.MonthName(12))
	require.Empty(t, lancamentos.MonthName(0))
	require.Empty(t, lancamentos.MonthName(13))
}

func TestAPI(t *testing.T) {
	var path, query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, query = r.URL.Path, r.URL.RawQuery
		switch r.URL.Path {
		case "/lancamentos":
			w.Write([]byte(`{"data":[{"id":"l1","ano":2024,"mes":1,"valorBruto":10.5}],"pagination":{"page":1,"limit":10,"total":1,"totalPages":1}}`))
		case "/lancamentos/stats":
			w.Write([]byte(`{"totalLancamentos":1,"valorTotalBruto":10.5,"valorTotalLiquido":9,"periodoMaisRecente":{"ano":2024,"mes":1},"anos":[2024],"tiposRepasse":[{"tipo":"FAF","total":1}],"contasBancarias":[]}`))
		default:
			w.Write([]byte(`{"id":"l1","ano":2024,"mes":1}`))
		}
	}))
	defer srv.Close()

	api := lancamentos.NewAPI(apiclient.New(srv.URL))
	ctx := context.Background()

	page, err := api.List(ctx, lancamentos.Filters{CNPJ: "12345678000199", UF: "rj"})
	require.NoError(t, err)
	require.Equal(t, "cnpj=12345678000199&uf=RJ", query)
	require.Len(t, page.Data, 1)
	require.Equal(t, 1, page.Pagination.TotalPages)

	stats, err := api.Stats(ctx, lancamentos.Filters{Page: 4})
	require.NoError(t, err)
	require.Empty(t, query)
	require.Equal(t, lancamentos.Period{Ano: 2024, Mes: 1}, stats.PeriodoMaisRecente)
	require.Equal(t, "FAF", stats.TiposRepasse[0].Tipo)

	entry, err := api.Get(ctx, "l1")
	require.NoError(t, err)
	require.Equal(t, "/lancamentos/l1", path)
	require.Equal(t, 2024, entry.Ano)
}

// gatedSource lets a test decide the order in which List calls return.
type gatedSource struct {
	mu    sync.Mutex
	gates map[int]chan struct{}
}

func (g *gatedSource) gate(page int) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gates == nil {
		g.gates = make(map[int]chan struct{})
	}
	if _, ok := g.gates[page]; !ok {
		g.gates[page] = make(chan struct{})
	}
	return g.gates[page]
}

func (g *gatedSource) List(_ context.Context, f lancamentos.Filters) (lancamentos.Page, error) {
	<-g.gate(f.Page)
	return lancamentos.Page{Pagination: lancamentos.Pagination{Page: f.Page}}, nil
}

func (g *gatedSource) Stats(_ context.Context, f lancamentos.Filters) (lancamentos.Stats, error) {
	<-g.gate(f.Page)
	return lancamentos.Stats{TotalLancamentos: f.Page}, nil
}

func TestBrowserDiscardsStaleResponses(t *testing.T) {
	src := &gatedSource{}
	b := lancamentos.NewBrowser(src)
	ctx := context.Background()

	firstStarted := make(chan struct{})
	firstDone := make(chan error, 1)
	go func() {
		close(firstStarted)
		_, err := b.Load(ctx, lancamentos.Filters{Page: 1})
		firstDone <- err
	}()
	<-firstStarted

	// The first request must be issued before the second.
	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		_, ok := src.gates[1]
		return ok
	}, testTimeout, testTick)

	secondDone := make(chan error, 1)
	go func() {
		_, err := b.Load(ctx, lancamentos.Filters{Page: 2})
		secondDone <- err
	}()
	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		_, ok := src.gates[2]
		return ok
	}, testTimeout, testTick)

	// Newer response arrives first, older one afterwards.
	close(src.gate(2))
	require.NoError(t, <-secondDone)
	close(src.gate(1))
	require.ErrorIs(t, <-firstDone, lancamentos.ErrSuperseded)

	f, page := b.Current()
	require.Equal(t, 2, f.Page)
	require.Equal(t, 2, page.Pagination.Page)
}

func TestBrowserStats(t *testing.T) {
	src := &gatedSource{}
	close(src.gate(7))
	b := lancamentos.NewBrowser(src)

	stats, err := b.LoadStats(context.Background(), lancamentos.Filters{Page: 7})
	require.NoError(t, err)
	require.Equal(t, 7, stats.TotalLancamentos)
	require.Equal(t, 7, b.CurrentStats().TotalLancamentos)
}

const (
	testTimeout = 2 * time.Second
	testTick    = 5 * time.Millisecond
)
