package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/lingualearn/api-contract-tests/framework"
	"github.com/lingualearn/api-contract-tests/harness"
)

type commandParams struct {
	baseURL  string
	timeout  time.Duration
	email    string
	password string
	filters  framework.RegexFilters
	debug    bool
	debugAll bool
}

func (c *commandParams) Read(args []string, errOutput io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOutput)
	fs.StringVar(&c.baseURL, "url", "", "base URL of the backend under test (default: TEST_BASE_URL or http://localhost:8081)")
	fs.DurationVar(&c.timeout, "timeout", 0, "per-request timeout (default 30s)")
	fs.StringVar(&c.email, "email", "", "known-valid account email (default: TEST_VALID_EMAIL)")
	fs.StringVar(&c.password, "password", "", "known-valid account password (default: TEST_VALID_PASSWORD)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errOutput, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		return false
	}
	return true
}

// applyTo overlays any explicitly given flags onto the environment-sourced
// configuration.
func (c *commandParams) applyTo(config *harness.RunConfig) {
	if c.baseURL != "" {
		config.BaseURL = strings.TrimSuffix(c.baseURL, "/")
	}
	if c.timeout > 0 {
		config.Timeout = c.timeout
	}
	if c.email != "" {
		config.Credentials.Email = c.email
	}
	if c.password != "" {
		config.Credentials.Password = c.password
	}
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
