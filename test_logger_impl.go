package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/lingualearn/api-contract-tests/framework"
)

var failedMarker = color.New(color.FgRed, color.Bold).Sprint("FAILED")
var skippedMarker = color.New(color.FgYellow).Sprint("SKIPPED")

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Printf("  [%s] %s\n", id, failedMarker)
	}
	if (failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess) {
		debugOutput.Dump(os.Stdout, "    ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Printf("  [%s] %s\n", id, skippedMarker)
	} else {
		fmt.Printf("  [%s] %s (%s)\n", id, skippedMarker, reason)
	}
}
