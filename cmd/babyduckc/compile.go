package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/babyduck-lang/babyduck/pkg/diagnostics"
	"github.com/babyduck-lang/babyduck/pkg/object"
)

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <input.bd> [output.bdo]",
		Short: "Compile a BabyDuck source file to a .bdo object file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			output := defaultObjectPath(input)
			if len(args) == 2 {
				output = args[1]
			}

			log := diagnostics.NewLogger(verbose)
			defer log.Sync()

			prog, err := compileSource(input, log)
			if err != nil {
				diagnostics.Report(cmd.OutOrStderr(), err)
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()

			if err := object.Encode(prog, f); err != nil {
				return fmt.Errorf("encoding %s: %w", output, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "compiled %s -> %s\n", input, output)
			return nil
		},
	}
}
