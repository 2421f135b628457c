// Package migrations embeds the PostgreSQL schema migrations so the
// server and the migrate CLI can run without the SQL files on disk.
package migrations

import "embed"

// FS holds every *.sql migration in golang-migrate naming
//
//go:embed *.sql
var FS embed.FS
