// Command babyduckc is the BabyDuck command-line front end: compile,
// run, disassemble, or interactively evaluate BabyDuck source and
// object programs, exposed as cobra subcommands (compile, run,
// disasm, repl).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "babyduckc",
		Short:         "Compiler, VM and REPL for the BabyDuck language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each compilation phase and executed quad")

	root.AddCommand(
		newCompileCmd(),
		newRunCmd(),
		newDisasmCmd(),
		newReplCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the babyduckc version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "babyduckc version %s\n", version)
			return nil
		},
	}
}
