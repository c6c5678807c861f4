// Package web provides the embedded static assets for the submission
// front-end: the form page and its supporting files, served at / and
// /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
