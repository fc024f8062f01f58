package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/safisaude-console/guard"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/lancamentos"
	"github.com/jrsteele09/safisaude-console/navigation"
	"github.com/jrsteele09/safisaude-console/roles"
	"github.com/jrsteele09/safisaude-console/users"
	"github.com/jrsteele09/safisaude-console/validation"
)

var errNotLoggedIn = errors.New("not logged in, run consolectl login")

// userError reduces err to the message a user should read.
func userError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(errors.UserMessage(err))
}

func loginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session on disk",
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if identity, ok := a.session.Identity(); ok {
				return fmt.Errorf("already logged in as %s, run consolectl logout first", identity.Email)
			}

			var err error
			if email == "" {
				if email, err = a.promptLine(cmd, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.promptPassword(cmd, "Senha: "); err != nil {
					return err
				}
			}
			if err := validation.Login(email, password); err != nil {
				return userError(err)
			}

			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Nome, navigation.RoleTitle(user.Role))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			a.session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		}),
	}
}

type whoami struct {
	User      users.User          `json:"user"`
	RoleTitle string              `json:"roleTitle"`
	Dashboard guard.DashboardKind `json:"dashboard"`
	State     string              `json:"state"`
	ExpiresAt time.Time           `json:"expiresAt"`
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			user, _ := a.session.Identity()
			return a.print(cmd, whoami{
				User:      user,
				RoleTitle: navigation.RoleTitle(user.Role),
				Dashboard: guard.Dashboard(user.Role),
				State:     a.session.State().String(),
				ExpiresAt: a.session.ExpiresAt(),
			})
		}),
	}
}

func refreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Renew the access token now",
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			if err := a.session.Refresh(cmd.Context()); err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token valid until %s\n", a.session.ExpiresAt().Local().Format(time.DateTime))
			return nil
		}),
	}
}

type navView struct {
	Active string          `json:"active"`
	Tree   navigation.Tree `json:"tree"`
}

func navCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Show the menus of the logged-in role",
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			user, _ := a.session.Identity()
			tree := navigation.Resolve(user.Role)
			return a.print(cmd, navView{Active: tree.Active(path), Tree: tree})
		}),
	}
	cmd.Flags().StringVar(&path, "path", guard.LandingPath, "Current page, used to pick the active item")
	return cmd
}

func tenantsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tenants",
		Aliases: []string{"clientes"},
		Short:   "Tenants (clientes)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tenants",
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			list, err := a.tenants().List(cmd.Context())
			if err != nil {
				return userError(err)
			}
			return a.print(cmd, list)
		}),
	})
	return cmd
}

func usersCmd(a *app) *cobra.Command {
	var role, search string
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"usuarios"},
		Short:   "Users (usuários)",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			var r roles.Role
			if role != "" {
				parsed, err := roles.Parse(role)
				if err != nil {
					return err
				}
				r = parsed
			}
			list, err := a.users().List(cmd.Context(), r, search)
			if err != nil {
				return userError(err)
			}
			return a.print(cmd, list)
		}),
	}
	list.Flags().StringVar(&role, "role", "", "Only users with this role")
	list.Flags().StringVar(&search, "search", "", "Match name or email")
	cmd.AddCommand(list)
	return cmd
}

func lancamentosCmd(a *app) *cobra.Command {
	var f lancamentos.Filters
	var sortOrder string
	cmd := &cobra.Command{
		Use:   "lancamentos",
		Short: "Federal health fund transfers",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List one page of the ledger",
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			f.SortOrder = lancamentos.SortOrder(sortOrder)
			page, err := a.lancamentos().List(cmd.Context(), f)
			if err != nil {
				return userError(err)
			}
			return a.print(cmd, page)
		}),
	}
	list.Flags().IntVar(&f.Page, "page", 0, "Page number")
	list.Flags().IntVar(&f.Limit, "limit", 0, "Entries per page")
	list.Flags().StringVar(&f.SortBy, "sort-by", "", "Sort field (ano, mes, valorBruto, valorLiquido, municipio, uf, tpRepasse, criadoEm)")
	list.Flags().StringVar(&sortOrder, "sort-order", "", "ASC or DESC")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Totals for the filtered ledger",
		RunE: a.authed(func(cmd *cobra.Command, args []string) error {
			stats, err := a.lancamentos().Stats(cmd.Context(), f)
			if err != nil {
				return userError(err)
			}
			return a.print(cmd, stats)
		}),
	}

	for _, sub := range []*cobra.Command{list, stats} {
		sub.Flags().IntVar(&f.Ano, "ano", 0, "Year")
		sub.Flags().IntVar(&f.Mes, "mes", 0, "Month (1-12)")
		sub.Flags().StringVar(&f.TpRepasse, "tp-repasse", "", "Transfer type")
		sub.Flags().StringVar(&f.Banco, "banco", "", "Bank")
		sub.Flags().StringVar(&f.Agencia, "agencia", "", "Branch")
		sub.Flags().StringVar(&f.Conta, "conta", "", "Account")
		sub.Flags().StringVar(&f.Search, "search", "", "Free text search")
		sub.Flags().StringVar(&f.CNPJ, "cnpj", "", "Tenant CNPJ, any punctuation")
		sub.Flags().StringVar(&f.Municipio, "municipio", "", "Municipality, partial match")
		sub.Flags().StringVar(&f.UF, "uf", "", "State code")
	}
	cmd.AddCommand(list, stats)
	return cmd
}
