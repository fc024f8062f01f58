package fakeapi

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const refreshTokenBytes = 32

var errRefreshInvalid = errors.New("refresh token invalid or expired")

type storedRefreshToken struct {
	Token  string
	UserID string
	Iat    time.Time
}

// RefreshTokens keeps one opaque refresh token per user. A token is sent to
// the client only as an httpOnly cookie.
type RefreshTokens struct {
	tokens  map[string]*storedRefreshToken
	userIDs map[string]string // user ID to token
	ttl     time.Duration
	nowTime func() time.Time
	lock    sync.Mutex
}

func NewRefreshTokens(ttl time.Duration, nowTime func() time.Time) *RefreshTokens {
	return &RefreshTokens{
		tokens:  make(map[string]*storedRefreshToken),
		userIDs: make(map[string]string),
		ttl:     ttl,
		nowTime: nowTime,
	}
}

// Create issues a token for userID, replacing any previous one.
func (rt *RefreshTokens) Create(userID string) (string, error) {
	tokenBytes := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", errors.Wrap(err, "failed to generate random bytes")
	}
	token := hex.EncodeToString(tokenBytes)

	rt.lock.Lock()
	defer rt.lock.Unlock()
	if existing, ok := rt.userIDs[userID]; ok {
		delete(rt.tokens, existing)
	}
	rt.tokens[token] = &storedRefreshToken{Token: token, UserID: userID, Iat: rt.nowTime()}
	rt.userIDs[userID] = token
	return token, nil
}

// Rotate exchanges a valid token for a new one and returns the owning user.
func (rt *RefreshTokens) Rotate(token string) (string, string, error) {
	rt.lock.Lock()
	stored, ok := rt.tokens[token]
	if ok {
		rt.deleteLocked(stored)
	}
	rt.lock.Unlock()

	if !ok || rt.nowTime().Sub(stored.Iat) > rt.ttl {
		return "", "", errRefreshInvalid
	}
	next, err := rt.Create(stored.UserID)
	if err != nil {
		return "", "", err
	}
	return stored.UserID, next, nil
}

// Revoke forgets token. Unknown tokens are ignored.
func (rt *RefreshTokens) Revoke(token string) {
	rt.lock.Lock()
	defer rt.lock.Unlock()
	if stored, ok := rt.tokens[token]; ok {
		rt.deleteLocked(stored)
	}
}

// RevokeUser forgets the token of userID.
func (rt *RefreshTokens) RevokeUser(userID string) {
	rt.lock.Lock()
	defer rt.lock.Unlock()
	if token, ok := rt.userIDs[userID]; ok {
		rt.deleteLocked(rt.tokens[token])
	}
}

func (rt *RefreshTokens) deleteLocked(stored *storedRefreshToken) {
	delete(rt.tokens, stored.Token)
	if rt.userIDs[stored.UserID] == stored.Token {
		delete(rt.userIDs, stored.UserID)
	}
}
