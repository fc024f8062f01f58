package session

import (
	"context"

	"github.com/jrsteele09/safisaude-console/users"
)

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	AccessToken string     `json:"accessToken"`
	User        users.User `json:"user"`
	ExpiresIn   int64      `json:"expiresIn"` // Seconds
}

// RefreshResponse is the body returned by POST /auth/refresh.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticator talks to the remote auth endpoints. The refresh token travels
// as an httpOnly cookie, so Refresh and Logout take no token argument.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	Refresh(ctx context.Context) (RefreshResponse, error)
	Logout(ctx context.Context) error
}

// Poster is the part of *apiclient.Client that RemoteAuth uses.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// RemoteAuth implements Authenticator over the REST API.
type RemoteAuth struct {
	client Poster
}

var _ Authenticator = (*RemoteAuth)(nil)

func NewRemoteAuth(client Poster) *RemoteAuth {
	return &RemoteAuth{client: client}
}

func (r *RemoteAuth) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	err := r.client.Post(ctx, "/auth/login", credentials{Email: email, Password: password}, &out)
	return out, err
}

func (r *RemoteAuth) Refresh(ctx context.Context) (RefreshResponse, error) {
	var out RefreshResponse
	err := r.client.Post(ctx, "/auth/refresh", struct{}{}, &out)
	return out, err
}

func (r *RemoteAuth) Logout(ctx context.Context) error {
	return r.client.Post(ctx, "/auth/logout", struct{}{}, nil)
}
