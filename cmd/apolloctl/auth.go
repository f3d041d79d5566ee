package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dalemusser/apollo/internal/app/apiclient"
	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.anonymous().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return c.startSession(s)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) signupCmd() *cobra.Command {
	var p apiclient.SignupPayload
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account, optionally through an invitation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.ConfirmPassword = p.Password
			s, err := c.anonymous().Signup(cmd.Context(), p)
			if err != nil {
				return err
			}
			return c.startSession(s)
		},
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&p.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&p.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&p.Invite, "invite", "", "Invitation token from a referral link")
	for _, f := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func (c *cli) startSession(s apiclient.Session) error {
	if err := saveToken(c.tokenFile, s.Token); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Signed in as %s <%s>\n", s.User.Name, s.User.Email)
	return nil
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clearToken(c.tokenFile); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Signed out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user, team, plan and grants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, info, err := c.session(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Name:\t%s\n", info.Name)
			fmt.Fprintf(w, "Email:\t%s\n", info.Email)
			if info.Team.Name != "" {
				fmt.Fprintf(w, "Team:\t%s (%s)\n", info.Team.Name, info.Team.PlanStatus)
			}
			fmt.Fprintf(w, "Admin:\t%t\n", info.IsAdmin)
			fmt.Fprintf(w, "Pro plan:\t%t\n", info.IsProPlan)
			grants := make([]string, 0, len(info.Permissions))
			for _, p := range info.Permissions {
				grants = append(grants, string(p.Action)+":"+string(p.Module))
			}
			if len(grants) == 0 {
				grants = append(grants, "-")
			}
			fmt.Fprintf(w, "Grants:\t%s\n", strings.Join(grants, ", "))
			return w.Flush()
		},
	}
}
