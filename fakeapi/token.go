package fakeapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/users"
)

// Claims are the access token claims the fake API issues and checks.
type Claims struct {
	Email  string     `json:"email"`
	Role   roles.Role `json:"role"`
	Tenant string     `json:"tenant,omitempty"`
	jwt.RegisteredClaims
}

// Signer signs and verifies HS256 access tokens.
type Signer struct {
	secret  []byte
	ttl     time.Duration
	nowTime func() time.Time
}

func NewSigner(secret string, ttl time.Duration, nowTime func() time.Time) *Signer {
	return &Signer{
		secret:  []byte(secret),
		ttl:     ttl,
		nowTime: nowTime,
	}
}

// Issue creates an access token for user and returns it with its lifetime in
// seconds.
func (s *Signer) Issue(user *users.User) (string, int64, error) {
	now := s.nowTime()
	claims := Claims{
		Email:  user.Email,
		Role:   user.Role,
		Tenant: user.Tenant(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,                            // The user the token was issued to
			IssuedAt:  jwt.NewNumericDate(now),            // Issued At
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)), // Expiry
			ID:        uuid.New().String(),                // Unique token ID
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, errors.Wrap(err, "failed to sign token with HMAC")
	}
	return signed, int64(s.ttl / time.Second), nil
}

// Verify parses token and checks its signature and expiry.
func (s *Signer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, s.verificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.nowTime),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid access token")
	}
	return claims, nil
}

func (s *Signer) verificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.secret, nil
}
