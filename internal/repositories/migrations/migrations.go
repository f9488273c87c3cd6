// Package migrations embeds the versioned SQL schema steps applied by goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
