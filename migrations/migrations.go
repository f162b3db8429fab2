// Package migrations embeds the goose SQL migrations so they ship inside
// the binary and the test helper alike.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
