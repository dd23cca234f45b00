// Package migrations contains embedded goose SQL migrations for PostgreSQL.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
