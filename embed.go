// Package pathviz exposes repo-level embedded assets to the binaries.
package pathviz

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
