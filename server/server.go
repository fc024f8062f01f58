// Package server is the console's backend-for-frontend. It keeps one session
// manager per browser console, gates every page by role and answers with JSON
// view models.
package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/apiclient"
	"github.com/jrsteele09/safisaude-console/internal/config"
	"github.com/jrsteele09/safisaude-console/kvstore"
	"github.com/jrsteele09/safisaude-console/session"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	consoles *Consoles

	apiBaseURL     string
	sessionOptions []session.Option
	nowTime        func() time.Time

	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

type Option func(*Server)

// WithAPIBaseURL overrides the remote API address from the config.
func WithAPIBaseURL(baseURL string) Option {
	return func(s *Server) {
		s.apiBaseURL = baseURL
	}
}

// WithSessionOptions is applied to every session manager the server creates
// (primarily for testing).
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) {
		s.sessionOptions = append(s.sessionOptions, opts...)
	}
}

// WithNowTime sets the clock console idle expiry is measured with.
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Server) {
		s.nowTime = nowFunc
	}
}

// New builds a server whose console sessions persist in store.
func New(cfg config.Config, store kvstore.Store, options ...Option) *Server {
	s := &Server{
		env:        cfg.GetEnv(),
		mux:        http.NewServeMux(),
		config:     cfg,
		apiBaseURL: cfg.GetAPIBaseURL(),
		registry:   prometheus.NewRegistry(),
	}
	for _, opt := range options {
		opt(s)
	}

	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safisaude_console",
		Name:      "http_requests_total",
		Help:      "Console requests by route and status.",
	}, []string{"method", "route", "status"})
	s.registry.MustRegister(
		s.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s.consoles = NewConsoles(store, ConsoleSettings{
		APIBaseURL:     s.apiBaseURL,
		Session:        cfg,
		Metrics:        apiclient.NewMetrics(s.registry),
		SessionOptions: s.sessionOptions,
		IdleTTL:        cfg.GetConsoleIdleTTL(),
		NowTime:        s.nowTime,
	})

	s.initRoutes()
	s.logRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close stops the refresh timers of every console session.
func (s *Server) Close() {
	s.consoles.Close()
}

// Consoles exposes the console session registry.
func (s *Server) Consoles() *Consoles {
	return s.consoles
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) Routes() []string {
	return s.routes
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1], "")
		} else {
			logRoute("", parts[0], "")
		}
	}
}

func logRoute(method, path, suffix string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Debug().Msgf("[%-19s] %s%s", displayMethod, path, suffix)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
