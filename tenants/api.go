package tenants

import (
	"context"
	"net/url"
)

// Remote is the transport the API wrapper needs; *apiclient.Client satisfies it.
type Remote interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// API wraps the /tenants endpoints. The remote only allows SUPER_ADMIN to
// mutate tenants.
type API struct {
	remote Remote
}

func NewAPI(remote Remote) *API {
	return &API{remote: remote}
}

func (a *API) List(ctx context.Context) ([]Tenant, error) {
	var out []Tenant
	if err := a.remote.Get(ctx, "/tenants", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Tenant{}
	}
	return out, nil
}

func (a *API) Get(ctx context.Context, id string) (Tenant, error) {
	var out Tenant
	err := a.remote.Get(ctx, "/tenants/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Create registers a tenant and, when requested, its first secretário.
func (a *API) Create(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	var out CreateResponse
	err := a.remote.Post(ctx, "/tenants", req, &out)
	return out, err
}

// Update sends a partial update with PUT.
func (a *API) Update(ctx context.Context, id string, req UpdateRequest) (Tenant, error) {
	var out Tenant
	err := a.remote.Put(ctx, "/tenants/"+url.PathEscape(id), req, &out)
	return out, err
}

// Delete removes a tenant. The remote cascades the deletion to its users.
func (a *API) Delete(ctx context.Context, id string) error {
	return a.remote.Delete(ctx, "/tenants/"+url.PathEscape(id))
}
