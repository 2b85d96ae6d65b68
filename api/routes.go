package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"template-widgets/workspace"
)

func RegisterRoutes(ws *workspace.Workspace, staticFS fs.FS, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := &handler{ws: ws, logger: logger}

	// Template list
	r.Get("/api/templates", h.getTemplates)
	r.Post("/api/templates", h.addTemplate)
	r.Delete("/api/templates/selected", h.removeTemplate)
	r.Put("/api/templates/selected", h.editTemplate)
	r.Post("/api/templates/{index}/select", h.selectTemplate)
	r.Get("/api/sidebar", h.getSidebar)

	// Document
	r.Get("/api/document", h.getDocument)
	r.Put("/api/document", h.putDocument)
	r.Put("/api/document/caret", h.putCaret)
	r.Post("/api/document/widgets/{n}/change", h.changeWidget)
	r.Post("/api/insert", h.insert)

	// WebSocket
	r.Get("/api/ws", h.handleWS)

	// Static sub-FS: strip the "static/" prefix present in the embed.FS.
	// When staticFS is already rooted at the page directory, Sub still
	// succeeds, so probe index.html to detect that case.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		staticSub = staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = staticFS
	}

	r.Get("/", serveFile(staticSub, "index.html"))

	fileServer := http.FileServer(http.FS(staticSub))
	r.Get("/css/*", fileServer.ServeHTTP)
	r.Get("/js/*", fileServer.ServeHTTP)

	return r
}

// serveFile returns a handler that reads a single file from fsys and sends it.
func serveFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

type handler struct {
	ws     *workspace.Workspace
	logger *zap.Logger
}
