// Package consolelog provides the single-line progress reporting used
// during long-running install/update operations, plus the warning log
// used for the engine's best-effort (non-fatal) failure paths.
package consolelog

import (
	"fmt"
	"log"
	"os"

	"github.com/apoorvam/goterminal"
)

var console = goterminal.New(os.Stdout)

// Verbose gates vlog output; left false by default, same as the teacher's
// ARG_VERBOSE flag in env.go.
var Verbose = false

// Progress overwrites the current console line - used for per-file
// download/extract progress so a long install doesn't scroll the terminal.
func Progress(format string, args ...interface{}) {
	console.Clear()
	fmt.Fprintf(console, format, args...)
	console.Print()
}

// Section starts a new, non-overwritten line - used between phases of an
// install (overrides done, downloads starting, etc).
func Section(format string, args ...interface{}) {
	console.Clear()
	fmt.Printf(format, args...)
}

// Warn logs a non-fatal failure. Per spec.md §7, registry writes and
// automodpack config writes are best-effort: a failure here must never
// abort the enclosing operation.
func Warn(format string, args ...interface{}) {
	log.Printf("warning: "+format, args...)
}

func Vlog(format string, args ...interface{}) {
	if Verbose {
		fmt.Printf("V: "+format, args...)
	}
}
