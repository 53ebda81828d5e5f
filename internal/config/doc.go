// Package config defines the application configuration structure and its
// loading from environment variables. Configuration is constructed once at
// process start and passed by reference; there is no hidden global state.
package config
