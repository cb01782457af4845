/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Command mjvm is the front-end glue: a thin cobra CLI wired onto the
// core packages. None of its logic is imported back into the core; the
// core never calls os.Exit or reads a flag.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var traceFlag bool
var traceInstructionsFlag bool

var rootCmd = &cobra.Command{
	Use:           "mjvm",
	Short:         "A small Java bytecode virtual machine",
	Long:          "mjvm loads a single Java class file, resolves its main method, and interprets it.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "enable diagnostic tracing")
	rootCmd.PersistentFlags().BoolVar(&traceInstructionsFlag, "verbose:class", false, "trace every executed instruction")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err.Error()))
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the mjvm version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mjvm v0.1.0")
	},
}
