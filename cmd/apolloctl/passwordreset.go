package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) passwordResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password-reset",
		Short: "Request a reset link and set a new password with it",
	}

	var email string
	request := &cobra.Command{
		Use:   "request",
		Short: "Ask for a reset link for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.anonymous().RequestPasswordReset(cmd.Context(), email)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, m.Message)
			return nil
		},
	}
	request.Flags().StringVar(&email, "email", "", "Account email")
	_ = request.MarkFlagRequired("email")

	check := &cobra.Command{
		Use:   "check <token>",
		Short: "Tell whether a reset token is still usable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.anonymous().CheckResetToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Token valid for %s until %s\n", rt.Email, rt.ExpiresAt.Local().Format("02/01/2006 15:04"))
			return nil
		},
	}

	var password string
	set := &cobra.Command{
		Use:   "set <token>",
		Short: "Set a new password with a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.anonymous().ResetPassword(cmd.Context(), args[0], password, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, m.Message)
			return nil
		},
	}
	set.Flags().StringVar(&password, "password", "", "New password (at least 8 characters)")
	_ = set.MarkFlagRequired("password")

	cmd.AddCommand(request, check, set)
	return cmd
}
