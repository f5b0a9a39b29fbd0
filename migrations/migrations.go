// Package migrations embeds the schema migrations applied at startup.
// The statements are written to run unchanged on PostgreSQL and SQLite.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
