package api

import (
	"embed"
	"log/slog"
	"net/http"
)

//go:embed static/index.html
var staticFiles embed.FS

// Index serves the bundled display client. The page is a thin placeholder;
// deployments usually put the real client in front of this API.
func Index(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		slog.Error("error reading embedded index page", "error", err)
		http.Error(w, "index page unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		slog.Error("error writing index page", "error", err)
	}
}
