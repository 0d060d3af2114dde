package report

import "sync"

// Enumeration of log levels, from least to most verbose.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors.
	LogLevelWarn           // Displays errors and warnings.
	LogLevelVerbose        // Displays everything (default).
)

// reporter is the package-level diagnostic sink. It is mutex-guarded even
// though the core pipeline is strictly single-threaded (§5), so that tooling
// calling it from more than one goroutine stays safe; the CLI driver in
// package cmd compiles its input files one after another.
type reporter struct {
	m         sync.Mutex
	logLevel  int
	errorSeen bool
}

var rep = &reporter{logLevel: LogLevelVerbose}

// InitReporter sets the package-level log level.
func InitReporter(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()
	rep.logLevel = logLevel
}

// AnyErrors reports whether any compile error has been seen so far.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()
	return rep.errorSeen
}
