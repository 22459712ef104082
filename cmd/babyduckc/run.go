package main

import (
	"github.com/spf13/cobra"

	"github.com/babyduck-lang/babyduck/pkg/diagnostics"
	"github.com/babyduck-lang/babyduck/pkg/vm"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a .bd source file or a compiled .bdo object file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := diagnostics.NewLogger(verbose)
			defer log.Sync()

			prog, err := loadProgram(args[0], log)
			if err != nil {
				diagnostics.Report(cmd.OutOrStderr(), err)
				return err
			}

			machine := vm.New()
			machine.SetOutput(cmd.OutOrStdout())
			machine.SetLogger(log)

			if err := machine.Run(prog); err != nil {
				diagnostics.Report(cmd.OutOrStderr(), err)
				return err
			}
			return nil
		},
	}
}
