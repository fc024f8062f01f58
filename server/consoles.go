package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/apiclient"
	"github.com/jrsteele09/safisaude-console/internal/config"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/kvstore"
	"github.com/jrsteele09/safisaude-console/lancamentos"
	"github.com/jrsteele09/safisaude-console/navigation"
	"github.com/jrsteele09/safisaude-console/session"
	"github.com/jrsteele09/safisaude-console/tenants"
	"github.com/jrsteele09/safisaude-console/users"
)

// consolePrefix namespaces each console's keys in the shared store.
const consolePrefix = "console:"

// IssuedKey marks a console id the server handed out and kept. Cookies naming
// any other id are ignored.
const IssuedKey = kvstore.DefaultPrefix + "console_issued"

// Console is everything one browser console owns: its session, the API
// client acting for it and its saved preferences.
type Console struct {
	ID          string
	Session     *session.Manager
	Client      *apiclient.Client
	Preferences *navigation.Preferences
	Lancamentos *lancamentos.Browser
	Ledger      *lancamentos.API
	Users       *users.API
	Tenants     *tenants.API

	store   kvstore.Store
	changed atomic.Bool // Something was written to store
	kept    atomic.Bool // Held by the registry
	evicted atomic.Bool
}

// trackedStore records that a console wrote state.
type trackedStore struct {
	kvstore.Store
	changed *atomic.Bool
}

func (s trackedStore) Set(ctx context.Context, key, value string) error {
	s.changed.Store(true)
	return s.Store.Set(ctx, key, value)
}

func (s trackedStore) SetMany(ctx context.Context, values map[string]string) error {
	s.changed.Store(true)
	return s.Store.SetMany(ctx, values)
}

// ConsoleSettings is what the registry needs to build a console.
type ConsoleSettings struct {
	APIBaseURL     string
	Session        config.SessionConfig
	Metrics        *apiclient.Metrics
	SessionOptions []session.Option
	IdleTTL        time.Duration    // Unused consoles are dropped from memory after this
	NowTime        func() time.Time // Defaults to time.Now
}

// Consoles is the registry of console sessions, keyed by the console cookie.
// Only consoles that wrote state are held; anonymous requests get a transient
// console that is dropped with the request.
type Consoles struct {
	mu        sync.Mutex
	consoles  map[string]*consoleEntry
	store     kvstore.Store
	settings  ConsoleSettings
	lastSweep time.Time
}

type consoleEntry struct {
	console  *Console
	lastSeen time.Time
}

const defaultConsoleIdleTTL = 30 * time.Minute

func NewConsoles(store kvstore.Store, settings ConsoleSettings) *Consoles {
	if settings.IdleTTL <= 0 {
		settings.IdleTTL = defaultConsoleIdleTTL
	}
	if settings.NowTime == nil {
		settings.NowTime = time.Now
	}
	return &Consoles{
		consoles: make(map[string]*consoleEntry),
		store:    store,
		settings: settings,
	}
}

// Get returns the console for id. A held console is returned as is; an id the
// server issued earlier is rebuilt from the store and its session restored.
// Any other id, including an empty one, gets a transient console with a new
// id that is only held once Keep sees it wrote state.
func (c *Consoles) Get(ctx context.Context, id string) (*Console, error) {
	now := c.settings.NowTime()
	c.sweep(now)
	if id != "" {
		if console := c.lookup(id, now); console != nil {
			return console, nil
		}

		issued, err := c.issued(ctx, id)
		if err != nil {
			return nil, errors.Wrapf(err, "[Consoles Get] console %s", id)
		}
		if issued {
			return c.reopen(ctx, id, now)
		}
	}

	console, err := c.build(ctx, uuid.NewString())
	if err != nil {
		return nil, errors.Wrap(err, "[Consoles Get] new console")
	}
	return console, nil
}

func (c *Consoles) lookup(id string, now time.Time) *Console {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.consoles[id]
	if !ok {
		return nil
	}
	entry.lastSeen = now
	return entry.console
}

func (c *Consoles) issued(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	_, err := c.consoleStore(id).Get(ctx, IssuedKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// reopen builds and restores an issued console outside the lock. When another
// request got there first its console wins.
func (c *Consoles) reopen(ctx context.Context, id string, now time.Time) (*Console, error) {
	console, err := c.build(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "[Consoles Get] console %s", id)
	}
	if console.Session.Restore(ctx) {
		identity, _ := console.Session.Identity()
		log.Info().Str("console", id).Str("user", identity.Email).Msg("console session restored")
	}

	c.mu.Lock()
	if entry, ok := c.consoles[id]; ok {
		entry.lastSeen = now
		c.mu.Unlock()
		console.Session.Close()
		return entry.console, nil
	}
	console.kept.Store(true)
	c.consoles[id] = &consoleEntry{console: console, lastSeen: now}
	c.mu.Unlock()
	return console, nil
}

// Keep starts holding a transient console once it has written state: a
// session, a remembered redirect, a notification or a preference.
func (c *Consoles) Keep(ctx context.Context, console *Console) {
	if console.kept.Load() || console.evicted.Load() || !console.changed.Load() {
		return
	}
	now := c.settings.NowTime()
	if err := console.store.Set(ctx, IssuedKey, now.UTC().Format(time.RFC3339)); err != nil {
		log.Err(err).Str("console", console.ID).Msg("failed to mark console issued")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.consoles[console.ID]; ok || !console.kept.CompareAndSwap(false, true) {
		return
	}
	c.consoles[console.ID] = &consoleEntry{console: console, lastSeen: now}
}

// Evict drops console from memory and stops its session timer. Its
// persisted state stays, so the console's cookie still opens it.
func (c *Consoles) Evict(console *Console) {
	console.evicted.Store(true)
	c.mu.Lock()
	if entry, ok := c.consoles[console.ID]; ok && entry.console == console {
		delete(c.consoles, console.ID)
	}
	c.mu.Unlock()
	console.Session.Close()
}

// sweep removes consoles idle for longer than the TTL. It scans at most
// twice per TTL.
func (c *Consoles) sweep(now time.Time) {
	ttl := c.settings.IdleTTL
	c.mu.Lock()
	if now.Sub(c.lastSweep) < ttl/2 {
		c.mu.Unlock()
		return
	}
	c.lastSweep = now

	var evicted []*Console
	for id, entry := range c.consoles {
		if now.Sub(entry.lastSeen) > ttl {
			delete(c.consoles, id)
			evicted = append(evicted, entry.console)
		}
	}
	held := len(c.consoles)
	c.mu.Unlock()

	if len(evicted) > 0 {
		log.Debug().Int("evicted", len(evicted)).Int("held", held).Msg("idle consoles evicted")
	}
	closeAll(evicted)
}

func closeAll(consoles []*Console) {
	for _, console := range consoles {
		console.Session.Close()
	}
}

func (c *Consoles) consoleStore(id string) kvstore.Store {
	return kvstore.WithPrefix(c.store, consolePrefix+id+":")
}

func (c *Consoles) build(ctx context.Context, id string) (*Console, error) {
	console := &Console{ID: id}
	store := trackedStore{Store: c.consoleStore(id), changed: &console.changed}
	jar, err := apiclient.NewStoreJar(ctx, store)
	if err != nil {
		return nil, err
	}

	client := apiclient.New(c.settings.APIBaseURL,
		apiclient.WithCookieJar(jar),
		apiclient.WithTimeout(c.settings.Session.GetRequestTimeout()),
		apiclient.WithMetrics(c.settings.Metrics),
	)
	opts := append([]session.Option{session.WithConfig(c.settings.Session)}, c.settings.SessionOptions...)
	manager := session.NewManager(session.NewRemoteAuth(client), store, opts...)
	client.SetTokenSource(manager)
	client.OnUnauthorized(manager.HandleUnauthorized)

	ledger := lancamentos.NewAPI(client)
	console.Session = manager
	console.Client = client
	console.Preferences = navigation.NewPreferences(store)
	console.Lancamentos = lancamentos.NewBrowser(ledger)
	console.Ledger = ledger
	console.Users = users.NewAPI(client)
	console.Tenants = tenants.NewAPI(client)
	console.store = store
	return console, nil
}

// Len is the number of consoles held in memory.
func (c *Consoles) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.consoles)
}

// Close stops every held console's refresh timer and drops them.
func (c *Consoles) Close() {
	c.mu.Lock()
	held := make([]*Console, 0, len(c.consoles))
	for id, entry := range c.consoles {
		held = append(held, entry.console)
		delete(c.consoles, id)
	}
	c.mu.Unlock()
	closeAll(held)
}
