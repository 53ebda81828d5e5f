// Package mocks provides hand-written store mocks for handler tests.
// Each mock counts its calls so tests can assert that validation failures
// never reach storage.
package mocks
