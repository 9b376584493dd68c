// Package staticfiles embeds the page's css and js so the binary serves them
// without a disk checkout.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var assets embed.FS

// FS exposes the embedded assets rooted at the static directory.
func FS() fs.FS {
	return assets
}
