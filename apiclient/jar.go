package apiclient

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/jrsteele09/safisaude-console/kvstore"
	"github.com/rs/zerolog/log"
)

// CookiesKey is where StoreJar keeps its cookies.
const CookiesKey = kvstore.DefaultPrefix + "auth_cookies"

// NewMemoryJar returns a cookie jar that lives as long as the process.
func NewMemoryJar() (http.CookieJar, error) {
	return cookiejar.New(nil)
}

type storedCookie struct {
	URL      string    `json:"url"`
	Host     string    `json:"host"`
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

func (s storedCookie) id() string {
	return s.Host + "|" + s.Path + "|" + s.Name
}

// StoreJar is a cookie jar whose contents are mirrored into a kvstore.Store,
// so the refresh cookie survives a restart of the host.
type StoreJar struct {
	mu      sync.Mutex
	jar     *cookiejar.Jar
	store   kvstore.Store
	cookies map[string]storedCookie
	now     func() time.Time
}

var _ http.CookieJar = (*StoreJar)(nil)

// NewStoreJar loads any cookies previously saved in store.
func NewStoreJar(ctx context.Context, store kvstore.Store) (*StoreJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	j := &StoreJar{
		jar:     jar,
		store:   store,
		cookies: make(map[string]storedCookie),
		now:     time.Now,
	}

	var saved []storedCookie
	if _, err := kvstore.GetJSON(ctx, store, CookiesKey, &saved); err != nil {
		return nil, err
	}
	for _, sc := range saved {
		if !sc.Expires.IsZero() && sc.Expires.Before(j.now()) {
			continue
		}
		u, err := url.Parse(sc.URL)
		if err != nil {
			continue
		}
		j.cookies[sc.id()] = sc
		jar.SetCookies(u, []*http.Cookie{sc.cookie()})
	}
	return j, nil
}

func (sc storedCookie) cookie() *http.Cookie {
	return &http.Cookie{
		Name:     sc.Name,
		Value:    sc.Value,
		Path:     sc.Path,
		Domain:   sc.Domain,
		Expires:  sc.Expires,
		Secure:   sc.Secure,
		HttpOnly: sc.HttpOnly,
	}
}

func (j *StoreJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(u, cookies)

	j.mu.Lock()
	defer j.mu.Unlock()

	origin := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}).String()
	for _, c := range cookies {
		sc := storedCookie{
			URL:      origin,
			Host:     u.Host,
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
		if c.MaxAge > 0 {
			sc.Expires = j.now().Add(time.Duration(c.MaxAge) * time.Second)
		}
		expired := c.MaxAge < 0 || (!sc.Expires.IsZero() && sc.Expires.Before(j.now()))
		if expired {
			delete(j.cookies, sc.id())
			continue
		}
		j.cookies[sc.id()] = sc
	}

	list := make([]storedCookie, 0, len(j.cookies))
	for _, sc := range j.cookies {
		list = append(list, sc)
	}
	if err := kvstore.SetJSON(context.Background(), j.store, CookiesKey, list); err != nil {
		log.Err(err).Msg("failed to persist cookies")
	}
}

func (j *StoreJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}
