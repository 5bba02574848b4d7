// Package data embeds the static files shipped with the binary.
package data

import "embed"

//go:embed templates
var Templates embed.FS
