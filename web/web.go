// Package web serves the embedded browser front end: the flyer form with its
// live preview, and the share page that re-renders a stored flyer. The
// client-side PDF/JPG exporters live in these pages; they rasterize the
// preview DOM at 2x scale and are a deliberately separate code path from the
// server-side compositor.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var content embed.FS

// ServePage returns a handler serving one embedded HTML page
func ServePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := content.ReadFile("static/" + name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(data)
	}
}

// StaticHandler serves the embedded static asset tree under /static/
func StaticHandler() http.Handler {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
