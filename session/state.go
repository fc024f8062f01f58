package session

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/kvstore"
	"github.com/jrsteele09/safisaude-console/users"
)

// State is where the manager is in its login lifecycle.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	default:
		return "unauthenticated"
	}
}

// Storage keys. The three auth keys are always written and removed together.
const (
	TokenKey    = kvstore.DefaultPrefix + "auth_token"
	UserKey     = kvstore.DefaultPrefix + "auth_user"
	ExpiresKey  = kvstore.DefaultPrefix + "auth_expires" // Unix milliseconds
	RedirectKey = kvstore.DefaultPrefix + "redirect_after_login"
)

// Session is an authenticated identity with its bearer token. A manager holds
// either no Session or exactly one.
type Session struct {
	Token     string
	Identity  users.User
	ExpiresAt time.Time
}

// expiresAt computes the token expiry. When the server does not send
// expiresIn the token's own exp claim is used; failing that the token is
// treated as already expired.
func expiresAt(now time.Time, token string, expiresIn int64) time.Time {
	if expiresIn > 0 {
		return now.Add(time.Duration(expiresIn) * time.Second)
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return now
}

func saveSession(ctx context.Context, store kvstore.Store, s *Session) error {
	user, err := json.Marshal(s.Identity)
	if err != nil {
		return errors.Wrap(err, "[saveSession] encode identity")
	}
	return store.SetMany(ctx, map[string]string{
		TokenKey:   s.Token,
		UserKey:    string(user),
		ExpiresKey: strconv.FormatInt(s.ExpiresAt.UnixMilli(), 10),
	})
}

func clearSession(ctx context.Context, store kvstore.Store) error {
	return store.Delete(ctx, TokenKey, UserKey, ExpiresKey)
}

// loadSession returns the persisted session, or false when any key is
// missing or unreadable.
func loadSession(ctx context.Context, store kvstore.Store) (*Session, bool, error) {
	values := make(map[string]string, 3)
	for _, key := range []string{TokenKey, UserKey, ExpiresKey} {
		v, err := store.Get(ctx, key)
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, errors.Wrapf(err, "[loadSession] read %s", key)
		}
		values[key] = v
	}

	if values[TokenKey] == "" {
		return nil, false, nil
	}
	var identity users.User
	if err := json.Unmarshal([]byte(values[UserKey]), &identity); err != nil {
		return nil, false, nil
	}
	ms, err := strconv.ParseInt(values[ExpiresKey], 10, 64)
	if err != nil {
		return nil, false, nil
	}
	return &Session{
		Token:     values[TokenKey],
		Identity:  identity,
		ExpiresAt: time.UnixMilli(ms),
	}, true, nil
}
