package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Konsultn-Engineering/dbconsole/discovery"
	"github.com/spf13/cobra"
)

func newProvidersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the providers found in the plugin directory and compiled in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.scan(cmd); err != nil {
				return err
			}

			entries := a.registry.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no providers found")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tID\tSOURCE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", discovery.Alias(e.ID), e.ID, e.Source)
			}
			return tw.Flush()
		},
	}
}
