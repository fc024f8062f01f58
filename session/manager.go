// Package session keeps the console's authenticated session: the identity,
// its bearer token and a timer that renews the token before it expires.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/safisaude-console/internal/config"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/kvstore"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const loginPath = "/login"

// Timer is the handle of a scheduled callback.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Manager owns one console session. It is safe for concurrent use; its lock
// is never held across remote calls or storage I/O.
type Manager struct {
	auth      Authenticator
	store     kvstore.Store
	nowTime   func() time.Time
	afterFunc AfterFunc

	refreshBuffer      time.Duration
	minRefreshInterval time.Duration
	restoreBuffer      time.Duration

	storeLock sync.Mutex // serialises storage writes

	lock     sync.Mutex
	state    State
	session  *Session
	lastErr  string
	limiter  *rate.Limiter
	timer    Timer
	timerSeq uint64
	closed   bool
}

var _ oauth2.TokenSource = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithNowTime sets the clock (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithAfterFunc replaces time.AfterFunc (primarily for testing).
func WithAfterFunc(fn AfterFunc) Option {
	return func(m *Manager) {
		m.afterFunc = fn
	}
}

// WithConfig takes the timing constants from cfg.
func WithConfig(cfg config.SessionConfig) Option {
	return func(m *Manager) {
		m.refreshBuffer = cfg.GetRefreshBuffer()
		m.minRefreshInterval = cfg.GetMinRefreshInterval()
		m.restoreBuffer = cfg.GetRestoreBuffer()
	}
}

// NewManager creates an unauthenticated manager. Call Restore to pick up a
// persisted session.
func NewManager(auth Authenticator, store kvstore.Store, options ...Option) *Manager {
	defaults := config.Session{}
	m := &Manager{
		auth:               auth,
		store:              store,
		nowTime:            time.Now,
		afterFunc:          realAfterFunc,
		refreshBuffer:      defaults.GetRefreshBuffer(),
		minRefreshInterval: defaults.GetMinRefreshInterval(),
		restoreBuffer:      defaults.GetRestoreBuffer(),
	}
	for _, opt := range options {
		opt(m)
	}
	m.limiter = rate.NewLimiter(rate.Every(m.minRefreshInterval), 1)
	return m
}

// Login authenticates with the remote API. On failure the previous state is
// kept and the user-facing message is recorded as the last error.
func (m *Manager) Login(ctx context.Context, email, password string) (users.User, error) {
	m.lock.Lock()
	if m.state != Unauthenticated {
		m.lock.Unlock()
		return users.User{}, errors.ErrNotUnauthenticated
	}
	m.state = Authenticating
	m.lastErr = ""
	m.lock.Unlock()

	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.lock.Lock()
		m.state = Unauthenticated
		m.lastErr = errors.UserMessage(err)
		m.lock.Unlock()
		log.Info().Str("email", email).Str("reason", errors.UserMessage(err)).Msg("login failed")
		return users.User{}, err
	}

	now := m.nowTime()
	sess := &Session{
		Token:     resp.AccessToken,
		Identity:  resp.User,
		ExpiresAt: expiresAt(now, resp.AccessToken, resp.ExpiresIn),
	}

	m.lock.Lock()
	m.state = Authenticated
	m.session = sess
	m.armLocked(now)
	m.lock.Unlock()

	m.syncStorage(ctx)
	log.Info().Str("user", sess.Identity.ID).Str("role", string(sess.Identity.Role)).Msg("login succeeded")
	return sess.Identity, nil
}

// Logout asks the remote API to end the session and then clears local state,
// whether or not the remote call succeeded.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.auth.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("logout request failed")
	}

	m.lock.Lock()
	m.clearLocked()
	m.lastErr = ""
	m.lock.Unlock()

	m.syncStorage(ctx)
}

// Refresh renews the bearer token using the refresh cookie. Attempts closer
// together than the minimum refresh interval return nil without doing
// anything. A failed refresh ends the session.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err := m.refresh(ctx)
	return err
}

// refresh reports whether a remote call was made.
func (m *Manager) refresh(ctx context.Context) (bool, error) {
	m.lock.Lock()
	sess := m.session
	if sess == nil {
		m.lock.Unlock()
		return false, errors.ErrNoSession
	}
	if !m.limiter.AllowN(m.nowTime(), 1) {
		m.lock.Unlock()
		log.Debug().Msg("refresh skipped, previous attempt too recent")
		return false, nil
	}
	m.state = Refreshing
	m.lock.Unlock()

	resp, err := m.auth.Refresh(ctx)
	now := m.nowTime()

	m.lock.Lock()
	if err != nil {
		if m.session == sess {
			m.clearLocked()
			m.lastErr = errors.MsgAuthExpired
		}
		m.lock.Unlock()
		m.syncStorage(ctx)
		log.Warn().Err(err).Msg("token refresh failed, session cleared")
		return true, fmt.Errorf("%w: %w", errors.ErrSessionExpired, err)
	}
	if m.session != sess {
		// Logged out or replaced while the request was in flight.
		m.lock.Unlock()
		return true, errors.ErrNoSession
	}
	m.state = Authenticated
	m.session = &Session{
		Token:     resp.AccessToken,
		Identity:  sess.Identity,
		ExpiresAt: expiresAt(now, resp.AccessToken, resp.ExpiresIn),
	}
	m.armLocked(now)
	m.lock.Unlock()

	m.syncStorage(ctx)
	return true, nil
}

// Restore loads a persisted session. It succeeds only if the token is still
// valid for longer than the restore buffer; otherwise storage is cleared.
func (m *Manager) Restore(ctx context.Context) bool {
	m.lock.Lock()
	if m.session != nil {
		m.lock.Unlock()
		return true
	}
	m.lock.Unlock()

	sess, ok, err := loadSession(ctx, m.store)
	if err != nil {
		log.Err(err).Msg("failed to read persisted session")
		return false
	}
	now := m.nowTime()
	if !ok || !now.Before(sess.ExpiresAt.Add(-m.restoreBuffer)) {
		m.syncStorage(ctx)
		return false
	}

	m.lock.Lock()
	if m.state != Unauthenticated || m.closed {
		restored := m.session != nil
		m.lock.Unlock()
		return restored
	}
	m.state = Authenticated
	m.session = sess
	m.armLocked(now)
	m.lock.Unlock()

	log.Debug().Str("user", sess.Identity.ID).Time("expires_at", sess.ExpiresAt).Msg("session restored")
	return true
}

// HandleUnauthorized ends the session after the API rejected the bearer
// token. It is meant to be registered as the API client's 401 hook.
func (m *Manager) HandleUnauthorized() {
	m.lock.Lock()
	if m.session == nil {
		m.lock.Unlock()
		return
	}
	m.clearLocked()
	m.lastErr = errors.MsgAuthExpired
	m.lock.Unlock()

	m.syncStorage(context.Background())
}

// Close stops the refresh timer. The manager keeps its state but never
// schedules another refresh.
func (m *Manager) Close() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.closed = true
	m.stopTimerLocked()
}

func (m *Manager) State() State {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.state
}

func (m *Manager) IsAuthenticated() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.session != nil
}

// Identity returns the logged-in user.
func (m *Manager) Identity() (users.User, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.session == nil {
		return users.User{}, false
	}
	return m.session.Identity, true
}

// ExpiresAt returns the current token expiry, or the zero time.
func (m *Manager) ExpiresAt() time.Time {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.session == nil {
		return time.Time{}
	}
	return m.session.ExpiresAt
}

// HasRole reports whether the logged-in user has one of allowed.
func (m *Manager) HasRole(allowed ...roles.Role) bool {
	identity, ok := m.Identity()
	return ok && identity.Role.In(allowed...)
}

// Token returns the bearer token for outbound requests.
func (m *Manager) Token() (*oauth2.Token, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.session == nil {
		return nil, errors.ErrNoSession
	}
	return &oauth2.Token{
		AccessToken: m.session.Token,
		TokenType:   "Bearer",
		Expiry:      m.session.ExpiresAt,
	}, nil
}

// LastError is the message of the most recent failure, or "".
func (m *Manager) LastError() string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.lastErr
}

func (m *Manager) ClearError() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.lastErr = ""
}

// RememberRedirect saves path as the page to return to after login. The
// login page itself is never remembered.
func (m *Manager) RememberRedirect(ctx context.Context, path string) error {
	if path == "" || path == loginPath {
		return nil
	}
	return m.store.Set(ctx, RedirectKey, path)
}

// TakeRedirect returns and forgets the remembered path.
func (m *Manager) TakeRedirect(ctx context.Context) (string, bool) {
	path, err := m.store.Get(ctx, RedirectKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			log.Err(err).Msg("failed to read redirect path")
		}
		return "", false
	}
	if err := m.store.Delete(ctx, RedirectKey); err != nil {
		log.Err(err).Msg("failed to clear redirect path")
	}
	return path, true
}

// armLocked replaces any pending timer with one for the current session:
// refreshBuffer before expiry but never sooner than minRefreshInterval. An
// already expired session is logged out instead.
func (m *Manager) armLocked(now time.Time) {
	m.stopTimerLocked()
	if m.session == nil || m.closed {
		return
	}

	m.timerSeq++
	seq := m.timerSeq
	until := m.session.ExpiresAt.Sub(now)
	if until <= 0 {
		m.timer = m.afterFunc(0, func() { m.onExpired(seq) })
		return
	}
	delay := max(until-m.refreshBuffer, m.minRefreshInterval)
	m.timer = m.afterFunc(delay, func() { m.onTimer(seq) })
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.timerSeq++
}

func (m *Manager) current(seq uint64) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return seq == m.timerSeq && !m.closed
}

func (m *Manager) onExpired(seq uint64) {
	if !m.current(seq) {
		return
	}
	log.Info().Msg("session expired, logging out")
	m.Logout(context.Background())
}

func (m *Manager) onTimer(seq uint64) {
	if !m.current(seq) {
		return
	}
	performed, err := m.refresh(context.Background())
	if err != nil || performed {
		return
	}
	// Skipped by the rate limit; try again later.
	m.lock.Lock()
	if seq == m.timerSeq && m.session != nil {
		m.armLocked(m.nowTime())
	}
	m.lock.Unlock()
}

func (m *Manager) clearLocked() {
	m.stopTimerLocked()
	m.state = Unauthenticated
	m.session = nil
}

// syncStorage writes the in-memory session to the store, or removes it. The
// store always ends up reflecting the latest state.
func (m *Manager) syncStorage(ctx context.Context) {
	m.storeLock.Lock()
	defer m.storeLock.Unlock()

	m.lock.Lock()
	sess := m.session
	m.lock.Unlock()

	var err error
	if sess != nil {
		err = saveSession(ctx, m.store, sess)
	} else {
		err = clearSession(ctx, m.store)
	}
	if err != nil {
		log.Err(err).Msg("failed to persist session")
	}
}
