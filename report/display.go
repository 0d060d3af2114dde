package report

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// displayCompileMessage prints the §6 diagnostic format:
//
//	Error: <filepath> Line <L>:<C> :
//	<source line>
//	<carets>
//	<message>
func displayCompileMessage(absPath string, span *TextSpan, message string) {
	fmt.Fprintf(os.Stderr, "Error: %s Line %d:%d :\n", absPath, span.StartLine+1, span.StartCol+1)
	displaySourceText(os.Stderr, absPath, span)
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

// displayCompileWarning prints the same layout as displayCompileMessage but
// labelled as a warning and does not abort.
func displayCompileWarning(absPath string, span *TextSpan, message string) {
	fmt.Fprintf(os.Stderr, "Warning: %s Line %d:%d :\n", absPath, span.StartLine+1, span.StartCol+1)
	displaySourceText(os.Stderr, absPath, span)
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

// displaySourceText writes the source line(s) covered by span followed by a
// line of carets underlining the offending text. Tabs are expanded to single
// spaces so caret alignment stays accurate.
func displaySourceText(w *os.File, absPath string, span *TextSpan) {
	file, err := os.Open(absPath)
	if err != nil {
		fmt.Fprintf(w, " <source unavailable: %s>\n", err)
		return
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", " "))
		}
		if ln > span.EndLine {
			break
		}
	}

	if len(lines) == 0 {
		return
	}

	for i, line := range lines {
		fmt.Fprintf(w, " %s\n", line)

		var prefix int
		if i == 0 {
			prefix = span.StartCol
		}

		suffix := 0
		if i == len(lines)-1 {
			suffix = len(line) - span.EndCol - 1
			if suffix < 0 {
				suffix = 0
			}
		}

		caretCount := len(line) - prefix - suffix
		if caretCount < 1 {
			caretCount = 1
		}

		fmt.Fprintf(w, " %s%s\n", strings.Repeat(" ", prefix), strings.Repeat("^", caretCount))
	}
}
