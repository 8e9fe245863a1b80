// Package logger provides a small leveled logging facade over the standard
// log package, with one process-wide verbosity knob.
//
// Verbosity levels, in increasing order:
//
//	Error < Info < Debug < Trace
//
// Example:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("pricing %s", ticker)
//	logger.Debugf("spot=%.2f sigma=%.4f", spot, sigma)
package logger

import (
	"log"
	"os"
)

// Level is a logging verbosity level; higher is chattier.
type Level int

const (
	Error Level = iota // critical failures only
	Info               // high-level progress
	Debug              // diagnostic detail
	Trace              // fine-grained execution detail
)

// current is the active verbosity; messages above it are dropped.
var current Level = Info

func init() {
	// Logs go to stderr so prices and reports on stdout stay clean for
	// pipelines.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// SetVerbosity sets the global verbosity, typically once after flag parsing.
func SetVerbosity(v int) {
	current = Level(v)
}

func logf(l Level, prefix, format string, args ...any) {
	if current >= l {
		log.Printf(prefix+format, args...)
	}
}

// Errorf logs a failure that needs attention.
func Errorf(format string, args ...any) {
	logf(Error, "[ERROR] ", format, args...)
}

// Infof logs a major lifecycle event.
func Infof(format string, args ...any) {
	logf(Info, "[INFO]  ", format, args...)
}

// Debugf logs diagnostic detail.
func Debugf(format string, args ...any) {
	logf(Debug, "[DEBUG] ", format, args...)
}

// Tracef logs very detailed traces; use sparingly.
func Tracef(format string, args ...any) {
	logf(Trace, "[TRACE] ", format, args...)
}
