package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) plansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List the subscription plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := c.anonymous().Plans(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PLAN\tPRICE\tUSERS\tFEATURES")
			for _, p := range plans {
				name := p.Name
				if p.Popular {
					name += " *"
				}
				fmt.Fprintf(w, "%s\tR$ %d/mês\t%s\t%s\n", name, p.Price, p.Users, strings.Join(p.Features, "; "))
			}
			return w.Flush()
		},
	}
}
