package harness

import "fmt"

// FailureKind classifies why a scenario failed, so that a failing run tells the
// operator which class of problem occurred.
type FailureKind string

const (
	// TransportFailure means the endpoint could not be reached at all: connection
	// error, timeout, or cancellation.
	TransportFailure FailureKind = "TransportFailure"

	// MalformedBody means the endpoint responded but its body could not be
	// decoded as JSON where JSON was expected. This is a contract problem, not a
	// transport problem.
	MalformedBody FailureKind = "MalformedBody"

	// ContractViolation means the endpoint responded with a status code or body
	// shape that does not match the declared contract.
	ContractViolation FailureKind = "ContractViolation"

	// PrecursorFailure means an upstream scenario did not supply data this
	// scenario declared a derivation on, so no request was sent.
	PrecursorFailure FailureKind = "PrecursorFailure"
)

// ScenarioResult is the outcome of executing one scenario.
type ScenarioResult struct {
	Scenario string
	Passed   bool
	Kind     FailureKind
	Reason   string

	// Status is the observed response status, or 0 if no response was received.
	Status int

	// Excerpt is a truncated copy of the response body for failure reports.
	Excerpt string

	// Note is a non-failure observation, such as which status an ambiguous
	// accepted-status set actually produced.
	Note string
}

func (r ScenarioResult) FailureMessage() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Reason)
}

func pass(scenario string, status int, excerpt string) ScenarioResult {
	return ScenarioResult{Scenario: scenario, Passed: true, Status: status, Excerpt: excerpt}
}

func fail(scenario string, kind FailureKind, reason string) ScenarioResult {
	return ScenarioResult{Scenario: scenario, Kind: kind, Reason: reason}
}
