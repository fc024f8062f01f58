package lancamentos

import (
	"context"
	"net/url"
)

// Remote is the transport the API wrapper needs; *apiclient.Client satisfies it.
type Remote interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
}

// API wraps the read-only /lancamentos endpoints.
type API struct {
	remote Remote
}

func NewAPI(remote Remote) *API {
	return &API{remote: remote}
}

func (a *API) List(ctx context.Context, f Filters) (Page, error) {
	var out Page
	if err := a.remote.Get(ctx, "/lancamentos", f.Query(), &out); err != nil {
		return Page{}, err
	}
	if out.Data == nil {
		out.Data = []Lancamento{}
	}
	return out, nil
}

func (a *API) Get(ctx context.Context, id string) (Lancamento, error) {
	var out Lancamento
	err := a.remote.Get(ctx, "/lancamentos/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Stats aggregates the entries matching f, ignoring its pagination and sort.
func (a *API) Stats(ctx context.Context, f Filters) (Stats, error) {
	var out Stats
	err := a.remote.Get(ctx, "/lancamentos/stats", f.StatsQuery(), &out)
	return out, err
}
