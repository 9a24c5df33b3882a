// Package apitests contains the contract tests for the language-learning backend
// and their supporting API.
//
// Harness infrastructure that is not specific to this backend, such as the
// scenario runner and the shape predicates, is in the lower-level harness and
// shape packages.
package apitests
