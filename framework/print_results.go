package framework

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	passColor    = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed, color.Bold)
	noteColor    = color.New(color.FgYellow)
	failureColor = color.New(color.FgRed)
)

// PrintResults writes a summary of the test run to standard output: the overall
// pass/fail counts, any notes attached by tests, and an itemized list of every
// failed test with its failure messages.
func PrintResults(results Results) {
	if results.OK() {
		passColor.Printf("All tests passed (%d total)\n", len(results.Tests))
	} else {
		failColor.Printf("FAILED: %d tests failed out of %d\n", len(results.Failures), len(results.Tests))
	}

	if notes := results.Notes(); len(notes) > 0 {
		fmt.Println()
		noteColor.Println("Notes:")
		for _, n := range notes {
			fmt.Printf("  %s\n", n)
		}
	}

	if !results.OK() {
		fmt.Println()
		fmt.Println("Failures:")
		for _, f := range results.Failures {
			failureColor.Printf("  [%s]\n", f.TestID)
			for _, err := range f.Errors {
				fmt.Printf("    %s\n", err)
			}
		}
	}
}
