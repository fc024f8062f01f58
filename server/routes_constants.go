package server

// Route path constants
// All console routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Auth Routes - Login & Logout
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	// Shell
	RouteDashboard          = "/dashboard"
	RouteNavigation         = "/navigation"
	RoutePreferencesSidebar = "/preferences/sidebar"

	// Ledger
	RouteLancamentos    = "/lancamentos"
	RouteLancamentoByID = "/lancamentos/{id}"
	RouteTransacoes     = "/transacoes"

	// Admin Routes
	RouteClientes    = "/clientes"
	RouteClienteByID = "/clientes/{id}"
	RouteUsuarios    = "/usuarios"
	RouteUsuarioByID = "/usuarios/{id}"

	RouteMetrics = "/metrics"
)
