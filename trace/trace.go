/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package trace is the VM's leveled diagnostic logger: a package-level
// writer and level that every other package calls through a handful of
// short verbs (Trace, Info, Warning, Error) instead of importing
// log/slog directly.
package trace

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Level int

const (
	FINE Level = iota
	INFO
	WARNING
	SEVERE
)

var (
	mu     sync.Mutex
	level  = WARNING
	writer io.Writer = os.Stderr
)

// Init resets the logger to its default level and destination. The CLI
// calls it before applying its trace flags.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	level = WARNING
	writer = os.Stderr
}

// SetLevel changes the minimum level that gets written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetWriter redirects output to w in place of os.Stderr.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	writer = w
}

func write(l Level, prefix, msg string) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	fmt.Fprintln(writer, prefix+msg)
}

// Trace logs a fine-grained, usually per-class/per-instruction message.
func Trace(msg string) { write(FINE, "", msg) }

// Info logs a normal informational message.
func Info(msg string) { write(INFO, "", msg) }

// Warning logs a recoverable problem.
func Warning(msg string) { write(WARNING, "WARNING: ", msg) }

// Error logs a fatal or near-fatal problem.
func Error(msg string) { write(SEVERE, "ERROR: ", msg) }
