package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jrsteele09/safisaude-console/guard"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.ConsoleMiddleware()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.ConsoleMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.ConsoleMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.ConsoleMiddleware()...))

	// Any authenticated role
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.ConsoleMiddleware(s.RequireRole(guard.AnyRole...))...))
	s.RegisterRouteHandler("GET "+RouteNavigation, ChainMiddleware(s.NavigationHandler(), s.ConsoleMiddleware(s.RequireRole(guard.AnyRole...))...))
	s.RegisterRouteHandler("POST "+RoutePreferencesSidebar, ChainMiddleware(s.SidebarPreferenceHandler(), s.ConsoleMiddleware(s.RequireRole(guard.AnyRole...))...))
	s.RegisterRouteHandler("GET "+RouteLancamentos, ChainMiddleware(s.LancamentosHandler(), s.ConsoleMiddleware(s.RequireRole(guard.AnyRole...))...))
	s.RegisterRouteHandler("GET "+RouteLancamentoByID, ChainMiddleware(s.LancamentoHandler(), s.ConsoleMiddleware(s.RequireRole(guard.AnyRole...))...))

	s.RegisterRouteHandler("GET "+RouteTransacoes, ChainMiddleware(s.TransacoesHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Transacoes...))...))

	// Admin routes
	s.RegisterRouteHandler("GET "+RouteClientes, ChainMiddleware(s.ClientesListHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Clientes...))...))
	s.RegisterRouteHandler("POST "+RouteClientes, ChainMiddleware(s.ClienteCreateHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Clientes...))...))
	s.RegisterRouteHandler("GET "+RouteClienteByID, ChainMiddleware(s.ClienteHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Clientes...))...))
	s.RegisterRouteHandler("PUT "+RouteClienteByID, ChainMiddleware(s.ClienteUpdateHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Clientes...))...))
	s.RegisterRouteHandler("DELETE "+RouteClienteByID, ChainMiddleware(s.ClienteDeleteHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Clientes...))...))

	s.RegisterRouteHandler("GET "+RouteUsuarios, ChainMiddleware(s.UsuariosListHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Usuarios...))...))
	s.RegisterRouteHandler("POST "+RouteUsuarios, ChainMiddleware(s.UsuarioCreateHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Usuarios...))...))
	s.RegisterRouteHandler("GET "+RouteUsuarioByID, ChainMiddleware(s.UsuarioHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Usuarios...))...))
	s.RegisterRouteHandler("PATCH "+RouteUsuarioByID, ChainMiddleware(s.UsuarioUpdateHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Usuarios...))...))
	s.RegisterRouteHandler("DELETE "+RouteUsuarioByID, ChainMiddleware(s.UsuarioDeleteHandler(), s.ConsoleMiddleware(s.RequireRole(guard.Usuarios...))...))

	// CORS preflight for every route
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(func(http.ResponseWriter, *http.Request) {}, s.LoggingMiddleware, s.CorsMiddleware))

	s.RegisterRouteHandler("GET "+RouteMetrics, ChainMiddleware(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP, s.PlainMiddleware()...))
}
