package apitests

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/lingualearn/api-contract-tests/framework"
	"github.com/lingualearn/api-contract-tests/harness"
)

// T represents a test or subtest in the contract-test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, and with extra features
// such as debug logging that are convenient for our use case. Those features are
// provided by the lower-level framework package.
//
// It also provides the scenario-execution API: every T shares the suite's
// harness.Runner, so that a scenario's captured response can feed a later
// scenario's declared derivation.
//
// To make test assertions, you can use the assert and require packages, passing
// the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	runner  *harness.Runner
}

func newTestScope(context *framework.Context, runner *harness.Runner) *T {
	return &T{context: context, runner: runner}
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit.
// The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.runner))
	})
}

// Debug logs some debug output for the test. The output will be passed to the
// test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Config returns the read-only configuration of this test run.
func (t *T) Config() harness.RunConfig {
	return t.runner.Config()
}

// RunScenario executes a scenario and returns its result without making any
// assertion about the outcome. The scenario's request and response are written
// to the test's debug log, and any ambiguity note is attached to the result
// shown in the final report.
func (t *T) RunScenario(s harness.Scenario) harness.ScenarioResult {
	t.runner.SetLogger(t.context.DebugLogger())
	result := t.runner.Execute(context.Background(), s)
	if result.Note != "" {
		t.context.Note(result.Note)
	}
	return result
}

// RequirePass executes a scenario and fails the test immediately if it did not
// pass, reporting the failure kind and reason.
func (t *T) RequirePass(s harness.Scenario) harness.ScenarioResult {
	result := t.RunScenario(s)
	if !result.Passed {
		if result.Excerpt != "" {
			t.Debug("response excerpt: %s", result.Excerpt)
		}
		t.Errorf("scenario %q failed: %s", s.Name, result.FailureMessage())
		t.FailNow()
	}
	return result
}

// CapturedField reads a value out of a previously captured scenario response.
func (t *T) CapturedField(scenario, path string) (string, bool) {
	return t.runner.CapturedField(scenario, path)
}

// uniqueEmail generates an email address that cannot collide with accounts
// created by earlier runs against the same backend.
func uniqueEmail() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return fmt.Sprintf("testuser_%s@example.com", hex.EncodeToString(b))
}
