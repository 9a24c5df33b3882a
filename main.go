package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/lingualearn/api-contract-tests/apitests"
	"github.com/lingualearn/api-contract-tests/framework"
	"github.com/lingualearn/api-contract-tests/harness"
)

func main() {
	var params commandParams
	if !params.Read(os.Args, os.Stderr) {
		os.Exit(1)
	}

	config := harness.LoadConfig()
	params.applyTo(&config)

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	fmt.Println()
	framework.PrintFilterDescription(params.filters)
	fmt.Printf("Running contract tests against %s\n", config.BaseURL)

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	runner := harness.NewRunner(config, mainDebugLogger)
	results := apitests.RunTestSuite(runner, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun only the failed tests:")
		fmt.Printf("  %s\n", rerunCommand(os.Args[0], params, results))
		os.Exit(1)
	}
}

// rerunCommand builds a shell command that reruns exactly the failed tests, with
// debug logging enabled.
func rerunCommand(executable string, params commandParams, results framework.Results) string {
	var b commandBuilder
	b.add(executable)
	if params.baseURL != "" {
		b.add("-url", params.baseURL)
	}
	var ids []string
	for _, f := range results.Failures {
		ids = append(ids, regexp.QuoteMeta(f.TestID.String()))
	}
	b.add("-run", "^("+strings.Join(ids, "|")+")$")
	b.add("-debug")
	return b.String()
}
