// Package api implements the HTTP request handlers for the task manager.
// Handlers are thin orchestration: decode the request, validate it, call
// the store, and map the outcome to an HTTP status. No business logic
// beyond that mapping belongs here.
package api
