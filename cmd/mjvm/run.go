/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"
	"os"
	"strings"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/spf13/cobra"

	"mjvm/classloader"
	"mjvm/gfunction"
	"mjvm/globals"
	"mjvm/jvm"
	"mjvm/object"
	"mjvm/trace"
)

var runCmd = &cobra.Command{
	Use:   "run <class-file>",
	Short: "Load a class file and execute its main method",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]

	setupTrace()

	raw, err := readClassBytes(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	class, err := classloader.Parse(raw)
	if err != nil {
		return err
	}

	registry := classloader.NewRegistry()
	if err := gfunction.Init(registry); err != nil {
		return err
	}
	if err := registry.Register(class); err != nil {
		return err
	}

	heap := object.NewHeap()
	flags := globals.New("mjvm")
	flags.TraceClass = traceFlag
	flags.TraceInstructions = traceInstructionsFlag
	flags.StartingArgs = javaArgs(args, getEnvArgs())

	interp := jvm.New(registry, heap, flags)
	result, err := interp.Boot(class.ThisClass, flags.StartingArgs)
	if err != nil {
		return err
	}
	if result != nil {
		fmt.Println(result.I64())
	}
	return nil
}

// javaArgs returns the argv main() receives: whatever follows the class
// name on the command line, plus anything collected from the JVM
// environment variables.
func javaArgs(cliArgs []string, envArgs string) []string {
	rest := cliArgs[1:]
	if envArgs == "" {
		return rest
	}
	return append(strings.Fields(envArgs), rest...)
}

// readClassBytes obtains the raw class file bytes, memory-mapping
// regular files and falling back to a full read for pipes and other
// special files where mmap does not apply. The loader itself only ever
// sees a []byte.
func readClassBytes(path string) ([]byte, error) {
	path = resolveClassPath(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return os.ReadFile(path)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return os.ReadFile(path)
	}
	return []byte(m), nil
}

// resolveClassPath accepts either a class file path or a base name to
// which .class is appended: a path that exists as given is used
// verbatim, otherwise .class is tried.
func resolveClassPath(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if !strings.HasSuffix(path, ".class") {
		if _, err := os.Stat(path + ".class"); err == nil {
			return path + ".class"
		}
	}
	return path
}

func setupTrace() {
	trace.Init()
	if traceFlag || traceInstructionsFlag {
		trace.SetLevel(trace.FINE)
	}
}
