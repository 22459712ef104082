package main

import (
	"github.com/spf13/cobra"

	"github.com/babyduck-lang/babyduck/pkg/diagnostics"
)

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <file>",
		Short: "Disassemble a .bd source file or .bdo object file to its quad stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := diagnostics.NewLogger(verbose)
			defer log.Sync()

			prog, err := loadProgram(args[0], log)
			if err != nil {
				diagnostics.Report(cmd.OutOrStderr(), err)
				return err
			}

			diagnostics.Disassemble(cmd.OutOrStdout(), prog)
			return nil
		},
	}
}
