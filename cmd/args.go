package cmd

import (
	"fmt"
	"os"
	"strings"

	"ccfront/report"
)

const usage = `Usage: ccfront [flags|options] <path>...

Flags:
------
-h, --help       Displays usage information (ie. this text).
-v, --version    Displays the compiler version.
-d, --debug      Sets the driver's debug flag; the emitted IR is unchanged.

Options:
--------
-o,  --outdir    Sets the directory .ll output files are written to.
                  Defaults to the directory of each input file.
-ll, --loglevel  Sets the diagnostic log level. One of:
                    "verbose" (default), "warn", "error", "silent"
`

// version is the compiler's self-reported identifier, printed by -v.
const version = "ccfront 0.1.0"

func printUsage(exitCode int) {
	fmt.Print(usage)
	os.Exit(exitCode)
}

func argumentError(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, "argument error: ", fmt.Sprintf(format, args...), "\n\n")
	printUsage(1)
}

// options is the set of argument names that consume a following value
// rather than standing alone as a flag.
var options = map[string]struct{}{
	"o": {}, "-outdir": {},
	"ll": {}, "-loglevel": {},
}

// argParser walks a flat os.Args-style slice one logical argument (flag,
// option-plus-value, or positional) at a time.
type argParser struct {
	args []string
	ndx  int
}

// nextArg returns the name of the next argument (empty for a positional),
// its value (empty for a bare flag), and whether an argument remained to
// parse at all.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx >= len(ap.args) {
		return "", "", false
	}
	arg := ap.args[ap.ndx]
	ap.ndx++

	if !strings.HasPrefix(arg, "-") {
		return "", arg, true
	}

	name := arg[1:]
	if _, ok := options[name]; !ok {
		return name, "", true
	}

	if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
		value := ap.args[ap.ndx]
		ap.ndx++
		return name, value, true
	}
	argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
	return "", "", false
}

// useArg applies one parsed argument to c, exiting the process if the
// argument is invalid or requests an action other than compilation.
func useArg(c *Driver, name, value string) {
	switch name {
	case "h", "-help":
		printUsage(0)
	case "v", "-version":
		fmt.Println(version)
		os.Exit(0)
	case "d", "-debug":
		c.debug = true
	case "o", "-outdir":
		c.outDir = value
	case "ll", "-loglevel":
		switch value {
		case "silent":
			report.InitReporter(report.LogLevelSilent)
		case "error":
			report.InitReporter(report.LogLevelError)
		case "warn":
			report.InitReporter(report.LogLevelWarn)
		case "verbose":
			report.InitReporter(report.LogLevelVerbose)
		default:
			argumentError("invalid log level %q", value)
		}
	case "":
		c.paths = append(c.paths, value)
	default:
		argumentError("unknown flag: -%s", name)
	}
}

// NewDriverFromArgs builds a Driver from the process's command-line
// arguments, exiting early if the arguments requested help/version or were
// invalid.
func NewDriverFromArgs(args []string) *Driver {
	c := &Driver{}
	ap := argParser{args: args}

	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}
		useArg(c, name, value)
	}

	if len(c.paths) == 0 {
		argumentError("at least one input path must be specified")
	}

	return c
}
