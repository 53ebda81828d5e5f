// Package store defines the persistence interfaces for the task manager's
// entities along with the error taxonomy shared by all implementations.
// Concrete implementations live under internal/platform.
package store
