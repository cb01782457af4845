/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package globals holds the process-wide configuration for one VM run.
// Nothing in classloader/object/opstack imports this package: a
// *Globals is constructed once by the CLI and threaded explicitly into
// jvm.New, so the core stays free of ambient state.
package globals

// Globals carries the flags the CLI front end collects and the core
// consults while loading and running a class.
type Globals struct {
	VMName string // argv[0]-derived name, used in diagnostics

	// TraceClass records the CLI's --trace flag. No package reads it; the
	// loader's trace lines depend only on the trace package's level.
	TraceClass bool

	// TraceInstructions, when set, asks the interpreter to log every
	// opcode it dispatches (pc, opcode name).
	TraceInstructions bool

	// StartingArgs are the Java-style command-line arguments passed to
	// main(String[]), after the class name itself.
	StartingArgs []string
}

// New returns a Globals populated with defaults.
func New(vmName string) *Globals {
	return &Globals{VMName: vmName}
}
