package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) invitationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invitation",
		Aliases: []string{"invite"},
		Short:   "Referral link and the users who signed up with it",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "link",
		Short: "Print your invitation link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			l, err := api.Invitation(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, l.Link)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the users you invited",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			invited, err := api.InvitedUsers(cmd.Context())
			if err != nil {
				return err
			}
			if len(invited.Items) == 0 {
				fmt.Fprintln(c.out, "Nenhum usuário convidado.")
				return nil
			}
			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEMAIL\tJOINED")
			for _, it := range invited.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\n", it.User.Name, it.User.Email, it.User.CreatedAt.Format("02/01/2006"))
			}
			return w.Flush()
		},
	})
	return cmd
}
