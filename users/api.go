package users

import (
	"context"
	"net/url"

	"github.com/jrsteele09/safisaude-console/roles"
)

// Remote is the transport the API wrapper needs; *apiclient.Client satisfies it.
type Remote interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// API wraps the /users endpoints.
type API struct {
	remote Remote
}

func NewAPI(remote Remote) *API {
	return &API{remote: remote}
}

// List returns users, optionally filtered by role and a name/email search.
// A SUPER_ADMIN role filter is never forwarded.
func (a *API) List(ctx context.Context, role roles.Role, search string) ([]User, error) {
	query := url.Values{}
	if role != "" && role != roles.SuperAdmin {
		query.Set("role", string(role))
	}
	if search != "" {
		query.Set("search", search)
	}
	var out []User
	if err := a.remote.Get(ctx, "/users", query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []User{}
	}
	return out, nil
}

func (a *API) Get(ctx context.Context, id string) (User, error) {
	var out User
	err := a.remote.Get(ctx, "/users/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (a *API) Create(ctx context.Context, req CreateRequest) (User, error) {
	var out User
	err := a.remote.Post(ctx, "/users", req, &out)
	return out, err
}

// Update sends a partial update with PATCH.
func (a *API) Update(ctx context.Context, id string, req UpdateRequest) (User, error) {
	var out User
	err := a.remote.Patch(ctx, "/users/"+url.PathEscape(id), req, &out)
	return out, err
}

func (a *API) Delete(ctx context.Context, id string) error {
	return a.remote.Delete(ctx, "/users/"+url.PathEscape(id))
}
