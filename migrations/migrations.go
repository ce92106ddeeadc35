// Package migrations embeds the Postgres schema scripts, applied in
// lexical order by the bootstrap command.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
