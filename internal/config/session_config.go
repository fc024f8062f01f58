package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

type SessionConfig interface {
	GetRefreshBuffer() time.Duration
	GetMinRefreshInterval() time.Duration
	GetRestoreBuffer() time.Duration
	GetRequestTimeout() time.Duration
	GetSessionCookieName() string
	GetConsoleIdleTTL() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetRefreshBuffer is how long before expiry the token is renewed.
func (Session) GetRefreshBuffer() time.Duration {
	return 5 * time.Minute
}

// GetMinRefreshInterval is the floor for the refresh timer and the
// minimum spacing between two refresh attempts.
func (Session) GetMinRefreshInterval() time.Duration {
	return 30 * time.Second
}

// GetRestoreBuffer is the safety margin applied when a persisted token is
// restored at startup.
func (Session) GetRestoreBuffer() time.Duration {
	return 5 * time.Minute
}

func (Session) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}

func (Session) GetSessionCookieName() string {
	return "safisaude_console"
}

// GetConsoleIdleTTL is how long an unused console stays in server memory.
// Its persisted state outlives it.
func (Session) GetConsoleIdleTTL() time.Duration {
	raw := GetEnv("CONSOLE_IDLE_TTL", "30m")
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("value", raw).Msg("invalid CONSOLE_IDLE_TTL, using 30m")
		return 30 * time.Minute
	}
	return d
}
