// Package domain defines the core business entities of the task manager
// (users and tasks), the enumerated status and priority values shared by
// the validation layer and the stores, and the domain-level errors.
package domain
