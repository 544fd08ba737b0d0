// Package web embeds the static front-end served from the router root.
package web

import "embed"

//go:embed static
var Files embed.FS
