// Package migrations holds the versioned postgres schema, embedded so the
// server and the migrate CLI can apply it without a checkout on disk.
package migrations

import "embed"

// FS contains every *.up.sql and *.down.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
