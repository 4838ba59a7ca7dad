// Package monitoring holds the diagnostic logger shared by the library packages.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to a no-op so the
// engine stays quiet when embedded; the command wires it to log.Printf when
// debug logging is requested.
var Logf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil sets a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// EnableStdLog routes Logf through the standard library logger.
func EnableStdLog() {
	Logf = log.Printf
}
