package migrations

import "embed"

// FS embeds the SQL migrations read by golang-migrate through iofs.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the service expects.
const Version = 3
