package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Konsultn-Engineering/dbconsole/console"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func newShellCommand(a *app) *cobra.Command {
	var (
		providerName string
		profileName  string
		dsn          string
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive SQL shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.scan(cmd); err != nil {
				return err
			}

			opts := []console.ShellOption{
				console.WithHistorySize(a.cfg.Shell.HistorySize),
				console.WithResolver(a.lookup),
				console.WithShellLogger(a.log),
			}
			if providerName != "" || profileName != "" {
				t, err := a.resolveTarget(providerName, profileName, dsn)
				if err != nil {
					return err
				}
				s, err := console.Connect(cmd.Context(), t.provider, t.connString, t.retry, a.log)
				if err != nil {
					return err
				}
				opts = append(opts, console.WithSession(s), console.WithRetry(t.retry))
			}

			sh, err := console.NewShell(cmd.OutOrStdout(), opts...)
			if err != nil {
				return err
			}
			defer sh.Close()

			return runShell(cmd, sh, a.cfg.Shell.Prompt, a.cfg.Shell.HistorySize)
		},
	}

	cmd.Flags().StringVarP(&providerName, "provider", "p", "", "provider name or ID")
	cmd.Flags().StringVar(&profileName, "profile", "", "connection profile from the config file")
	cmd.Flags().StringVarP(&dsn, "dsn", "d", "", "connection string")
	return cmd
}

func runShell(cmd *cobra.Command, sh *console.Shell, prompt string, historySize int) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		InterruptPrompt:   "^C",
		EOFPrompt:         `\q`,
		HistoryLimit:      historySize,
		HistorySearchFold: true,
		Stdout:            cmd.OutOrStdout(),
		Stderr:            cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("initializing shell: %w", err)
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		exit, err := sh.Handle(cmd.Context(), line)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		}
		if exit {
			return nil
		}
	}
}
