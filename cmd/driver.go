// Package cmd is the top-level driver for the compiler: argument parsing,
// per-file orchestration of lex/parse/emit, and console output.
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"ccfront/ast"
	"ccfront/irgen"
	"ccfront/lexer"
	"ccfront/parser"
	"ccfront/report"
)

// Driver holds the configuration produced by parsing command-line
// arguments and runs compilation for each requested input path.
type Driver struct {
	paths  []string
	outDir string
	debug  bool
}

// Run compiles every configured path in order. Every error the driver or
// the front-end encounters is fatal and terminates the process immediately
// (report.ReportFatal/ReportCompileError both exit), so a non-zero exit
// status is always produced for any failure, including a missing input
// file — unlike a bare open/read that merely logs and moves on.
func (d *Driver) Run() int {
	displayRunHeader(len(d.paths))

	for _, path := range d.paths {
		d.compileFile(path)
	}

	displayRunFooter()
	return 0
}

// compileFile reads, parses, and lowers one source file, writing its IR
// alongside (or under d.outDir).
func (d *Driver) compileFile(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		report.ReportFatal("invalid path %q: %s", path, err)
	}

	f, err := os.Open(absPath)
	if err != nil {
		report.ReportFatal("cannot open input file %q: %s", absPath, err)
	}
	defer f.Close()

	displayBeginFile(absPath)

	tu := d.parseFile(absPath, f)
	mod := irgen.NewEmitter().Emit(tu)

	outPath := d.outputPathFor(absPath)
	if err := os.WriteFile(outPath, []byte(mod.String()), 0o644); err != nil {
		report.ReportFatal("cannot write output %q: %s", outPath, err)
	}

	displayEndFile()
}

// parseFile lexes and parses src, catching any *report.CompileError the
// lexer/parser panics and turning it into the positioned diagnostic of §6
// (which itself aborts the process) rather than letting the panic unwind
// past the driver.
func (d *Driver) parseFile(absPath string, src *os.File) *ast.TranslationUnit {
	defer func() {
		if x := recover(); x != nil {
			switch err := x.(type) {
			case *report.CompileError:
				report.ReportCompileError(absPath, err.Span, err.Message)
			case error:
				report.ReportStdError(absPath, err)
			default:
				report.ReportICE("%v", x)
			}
		}
	}()

	lex := lexer.New(absPath, src)
	p := parser.New(absPath, lex)
	return p.ParseTranslationUnit()
}

// outputPathFor derives the ".ll" path for absPath per the driver's naming
// rule: the input's base name with everything from its first '.' onward
// stripped, plus ".ll" — so "main.c" and "main.test.c" both produce
// "main.ll". The result is placed in d.outDir when one was given, otherwise
// alongside the input.
func (d *Driver) outputPathFor(absPath string) string {
	base := filepath.Base(absPath)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	base += ".ll"

	if d.outDir != "" {
		return filepath.Join(d.outDir, base)
	}
	return filepath.Join(filepath.Dir(absPath), base)
}
