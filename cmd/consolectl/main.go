// Command consolectl is the SAFISAUDE console for the terminal. The session
// is kept in a SQLite file so it survives between invocations.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/safisaude-console/apiclient"
	"github.com/jrsteele09/safisaude-console/internal/config"
	"github.com/jrsteele09/safisaude-console/internal/logging"
	"github.com/jrsteele09/safisaude-console/kvstore"
	"github.com/jrsteele09/safisaude-console/lancamentos"
	"github.com/jrsteele09/safisaude-console/session"
	"github.com/jrsteele09/safisaude-console/tenants"
	"github.com/jrsteele09/safisaude-console/users"
)

const appName = "consolectl"

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %s\n", err)
	}
	if err := rootCmd(config.New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is what every command runs against. It is opened per invocation.
type app struct {
	cfg      config.Config
	apiURL   string
	dbPath   string
	output   string
	logLevel string

	store   *kvstore.SQLiteStore
	client  *apiclient.Client
	session *session.Manager
	stdin   *bufio.Reader
}

func rootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "SAFISAUDE administration console",
		Long: `consolectl logs in to the SAFISAUDE API and browses tenants, users
and the lançamentos ledger with the permissions of the logged-in role.

The session is stored on disk and renewed with the refresh cookie.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.apiURL, "api", cfg.GetAPIBaseURL(), "API base URL")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", cfg.GetSQLitePath(), "Session database path")
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", "yaml", "Output format (yaml, json)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		refreshCmd(a),
		navCmd(a),
		tenantsCmd(a),
		usersCmd(a),
		lancamentosCmd(a),
	)
	return cmd
}

// open wires the store, the API client and the session manager, and picks up
// the persisted session.
func (a *app) open(ctx context.Context) error {
	logging.Setup("DEV", a.logLevel)

	store, err := kvstore.OpenSQLite(a.dbPath)
	if err != nil {
		return fmt.Errorf("open session database: %w", err)
	}
	jar, err := apiclient.NewStoreJar(ctx, store)
	if err != nil {
		store.Close()
		return fmt.Errorf("load cookies: %w", err)
	}

	a.store = store
	a.client = apiclient.New(a.apiURL,
		apiclient.WithCookieJar(jar),
		apiclient.WithTimeout(a.cfg.GetRequestTimeout()),
	)
	a.session = session.NewManager(session.NewRemoteAuth(a.client), store, session.WithConfig(a.cfg))
	a.client.SetTokenSource(a.session)
	a.client.OnUnauthorized(a.session.HandleUnauthorized)
	a.session.Restore(ctx)
	return nil
}

func (a *app) close() {
	if a.session != nil {
		a.session.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
}

// run opens the app around fn.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd.Context()); err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, args)
	}
}

// authed is run for commands that need a logged-in user.
func (a *app) authed(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return a.run(func(cmd *cobra.Command, args []string) error {
		if !a.session.IsAuthenticated() {
			return errNotLoggedIn
		}
		return fn(cmd, args)
	})
}

func (a *app) tenants() *tenants.API         { return tenants.NewAPI(a.client) }
func (a *app) users() *users.API             { return users.NewAPI(a.client) }
func (a *app) lancamentos() *lancamentos.API { return lancamentos.NewAPI(a.client) }
