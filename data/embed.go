// Package data is a sample content root: the base JSON files, a Spanish
// translation set under es/, role move files and one optional module. Tests
// serve it over HTTP to exercise the loader end to end.
package data

import (
	"embed"
	"io/fs"
	"net/http"
)

// dataFS embeds the content tree at build time.
//
//go:embed *.json es moves modules
var dataFS embed.FS

// Handler serves the content tree under /data/, matching the paths the
// loader requests relative to a content root.
func Handler() http.Handler {
	return http.StripPrefix("/data/", http.FileServerFS(fs.FS(dataFS)))
}
