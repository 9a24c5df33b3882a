// Package framework contains the low-level test harness infrastructure that is not
// specific to any particular API domain.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to
// accumulate success/failure results.
//
// 2. Tests can be selected or excluded by regex filters on their identifiers.
//
// 3. Each test can capture debug output which is shown only when wanted, and can
// attach notes that are surfaced in the final report without failing the test.
//
// The domain-specific code that knows what is being tested, meaning which
// endpoints to call and what contract each response must satisfy, lives in the
// harness and apitests packages.
package framework
