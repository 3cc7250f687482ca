// Package migrations embeds the SQL schema files for the durable stores.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
