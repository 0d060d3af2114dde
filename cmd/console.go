package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
)

// Console chrome lives entirely in this file: every positioned diagnostic
// still goes through package report's plain fmt.Printf formatting (§6's
// exact format is not something to dress up), and pterm is reserved for
// the driver's own before/during/after-compilation banners.
var (
	successFG = pterm.FgLightGreen
	infoFG    = successFG
	errorFG   = pterm.FgRed
)

func displayRunHeader(fileCount int) {
	fmt.Print("ccfront ")
	infoFG.Print(version)
	fmt.Printf(" -- compiling %d file(s)\n", fileCount)
}

var fileSpinner *pterm.SpinnerPrinter

func displayBeginFile(absPath string) {
	fileSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(infoFG))
	fileSpinner.Start(filepath.Base(absPath))
}

func displayEndFile() {
	if fileSpinner != nil {
		fileSpinner.Success()
		fileSpinner = nil
	}
}

func displayRunFooter() {
	successFG.Println("done")
}
