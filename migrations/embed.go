// Package migrations embeds the versioned schema applied by `epiccrm init`.
package migrations

import "embed"

// FS holds the up/down SQL files.
//
//go:embed *.sql
var FS embed.FS
