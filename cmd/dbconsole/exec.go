package main

import (
	"fmt"

	"github.com/Konsultn-Engineering/dbconsole/console"
	"github.com/Konsultn-Engineering/dbconsole/statement"
	"github.com/spf13/cobra"
)

func newExecCommand(a *app) *cobra.Command {
	var (
		providerName string
		profileName  string
		dsn          string
		inTx         bool
	)

	cmd := &cobra.Command{
		Use:   "exec [flags] <statement>...",
		Short: "Run statements in order and print their results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := a.scan(cmd); err != nil {
				return err
			}
			t, err := a.resolveTarget(providerName, profileName, dsn)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := console.Connect(ctx, t.provider, t.connString, t.retry, a.log)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := s.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			if inTx {
				if err := s.BeginTransaction(ctx); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for i, sql := range args {
				res, err := statement.Execute(ctx, s, sql)
				if err != nil {
					if inTx {
						fmt.Fprintln(cmd.ErrOrStderr(), "rolling back")
					}
					return fmt.Errorf("statement %d: %w", i+1, err)
				}
				if err := console.Render(out, res); err != nil {
					return err
				}
			}

			if inTx {
				return s.CommitTransaction(ctx)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&providerName, "provider", "p", "", "provider name or ID")
	cmd.Flags().StringVar(&profileName, "profile", "", "connection profile from the config file")
	cmd.Flags().StringVarP(&dsn, "dsn", "d", "", "connection string")
	cmd.Flags().BoolVar(&inTx, "tx", false, "run all statements in one transaction")
	return cmd
}
