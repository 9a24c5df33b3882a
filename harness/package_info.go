// Package harness implements the contract-test runner: declarative Scenario
// definitions, the status predicates they carry, and the Runner that executes a
// scenario against the backend under test and classifies any failure.
//
// A scenario is a single stateless check of one endpoint. The only state the
// runner keeps across scenarios is a store of captured response bodies, which
// later scenarios may reference through explicitly declared derivations (for
// example, starting the first lesson returned by the lesson-list scenario).
package harness
