// Package xassert carries the invariant-checking idiom the driver relies
// on: in simulation every party is honest, so a verification that fails
// is a bug in the simulator itself, not a signal to propagate as an error.
package xassert

import "fmt"

// Assert panics with a formatted message if cond is false.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
