package framework

import (
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Notes   []string
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Notes returns every note attached by any test in the run, prefixed with the
// test's identifier. Notes flag observations that are worth reporting but are
// not failures, such as ambiguous backend behavior that the contract tolerates.
func (r Results) Notes() []string {
	var ret []string
	for _, t := range r.Tests {
		for _, n := range t.Notes {
			ret = append(ret, fmt.Sprintf("[%s] %s", t.TestID, n))
		}
	}
	return ret
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
