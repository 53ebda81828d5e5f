// Package migrations embeds the goose SQL migrations so the server can
// apply them at startup without a separate deployment step.
package migrations

import "embed"

// FS holds the SQL migration files.
//
//go:embed *.sql
var FS embed.FS
