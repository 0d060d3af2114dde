package report

import (
	"fmt"
	"os"
)

// CompileError is a lexical or syntactic error raised at a specific source
// span. The lexer and parser panic a *CompileError on the first error they
// detect (§4.1, §4.5); the driver recovers it at the translation-unit
// boundary (cmd's parseFile, which handles it the same way CatchErrors
// does) and turns it into the positioned diagnostic of §6, then aborts.
type CompileError struct {
	Message string
	Span    *TextSpan
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise builds a new CompileError. Callers panic the result:
//
//	panic(report.Raise(span, "unterminated string literal"))
func Raise(span *TextSpan, format string, args ...interface{}) *CompileError {
	return &CompileError{Message: fmt.Sprintf(format, args...), Span: span}
}

// ReportICE reports an internal compiler error: a violated invariant that
// should never happen regardless of input. Always printed, regardless of log
// level, and always fatal.
func ReportICE(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "internal compiler error: %s\n", fmt.Sprintf(format, args...))
	os.Exit(2)
}

// ReportFatal reports a fatal configuration/environment error (missing file,
// bad flag, etc.) that stops compilation before the front-end even starts.
func ReportFatal(format string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		fmt.Fprintf(os.Stderr, "fatal error: %s\n", fmt.Sprintf(format, args...))
	}
	os.Exit(1)
}

// CatchErrors recovers a panicked *CompileError (or a plain error) thrown
// anywhere within the lexer/parser call stack for the file at absPath, prints
// the positioned diagnostic of §6, and aborts the process — the front-end's
// only error-recovery strategy, by design (§4.5). Must always be deferred.
func CatchErrors(absPath string) {
	if x := recover(); x != nil {
		switch err := x.(type) {
		case *CompileError:
			ReportCompileError(absPath, err.Span, err.Message)
		case error:
			ReportStdError(absPath, err)
		default:
			ReportICE("%v", x)
		}
	}
}

// ReportCompileError prints the §6 diagnostic format and aborts the process.
// There is no recovery path beyond the first error: this function never
// returns.
func ReportCompileError(absPath string, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	rep.errorSeen = true
	rep.m.Unlock()

	if rep.logLevel > LogLevelSilent {
		displayCompileMessage(absPath, span, fmt.Sprintf(message, args...))
	}
	os.Exit(1)
}

// ReportCompileWarning prints a non-fatal warning in the same positioned
// format as ReportCompileError but does not abort.
func ReportCompileWarning(absPath string, span *TextSpan, message string, args ...interface{}) {
	if rep.logLevel >= LogLevelWarn {
		displayCompileWarning(absPath, span, fmt.Sprintf(message, args...))
	}
}

// ReportStdError prints a plain Go error encountered while reading or
// processing absPath (e.g. an I/O failure) and aborts.
func ReportStdError(absPath string, err error) {
	rep.m.Lock()
	rep.errorSeen = true
	rep.m.Unlock()

	if rep.logLevel > LogLevelSilent {
		fmt.Fprintf(os.Stderr, "%s: error: %s\n", absPath, err)
	}
	os.Exit(1)
}
