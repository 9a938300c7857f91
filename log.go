package finlit

import (
	"log"
	"sync/atomic"
)

var verbose atomic.Bool

// SetVerbose turns debug messages on or off.
func SetVerbose(on bool) { verbose.Store(on) }

// Verbose reports whether debug messages are on.
func Verbose() bool { return verbose.Load() }

func debugf(format string, args ...any) {
	if verbose.Load() {
		log.Printf("debug: "+format, args...)
	}
}
