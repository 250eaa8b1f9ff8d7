// Package migrations embeds the goose migrations of the Postgres backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
