// Package migrations embeds the versioned schema files so binaries can
// migrate without shipping a directory next to them.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
