package main

import (
	"github.com/spf13/cobra"

	"github.com/babyduck-lang/babyduck/pkg/diagnostics"
	"github.com/babyduck-lang/babyduck/pkg/repl"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive BabyDuck shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := diagnostics.NewLogger(verbose)
			defer log.Sync()
			return repl.New(cmd.OutOrStdout(), log).Run()
		},
	}
}
