// Command qcc compiles a single translation unit of the supported C
// subset into GNU-assembler x86-64 text, reading from a named file or
// standard input and writing the result to an output path.
package main

import (
	"fmt"
	"os"

	"github.com/skx/qcc/internal/driver"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var output string
	var debug bool

	cmd := &cobra.Command{
		Use:   "qcc [flags] [input-file]",
		Short: "qcc compiles a subset of C to x86-64 GNU-assembler text",
		Long: `qcc is a small ahead-of-time compiler for a subset of C.

It reads a single translation unit from a file, or from standard input
when no file is given, and writes GNU-assembler Intel-syntax x86-64 text
to the path given by -o (tmp.s by default), suitable for assembling and
linking with a conventional C runtime on a System V / AMD64 Linux target.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				os.Setenv("QCC_LOG_LEVEL", "DEBUG")
			}
			driver.ConfigureLogging()

			var path string
			if len(args) == 1 {
				path = args[0]
			}

			source, displayName, err := driver.ReadInput(path, cmd.InOrStdin())
			if err != nil {
				return err
			}

			asm, err := driver.Compile(source, displayName)
			if err != nil {
				return err
			}

			return driver.WriteOutput(output, asm)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "tmp.s", "path to write the emitted assembly")
	cmd.Flags().BoolVar(&debug, "debug", false, "force QCC_LOG_LEVEL=DEBUG for this run")
	return cmd
}
