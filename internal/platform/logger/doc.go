// Package logger provides structured logging functionality for the
// application: a slog JSON logger configured from the server settings and
// helpers for carrying request-scoped loggers through context.
package logger
