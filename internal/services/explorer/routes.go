package explorer

import (
	"net/http"

	"github.com/louisbranch/explorer/internal/services/explorer/platform/httpx"
	"github.com/louisbranch/explorer/internal/services/explorer/routepath"
)

func registerRoutes(mux *http.ServeMux, h *handlers) {
	mux.HandleFunc("GET "+routepath.Explorer, h.handlePage)
	mux.HandleFunc("GET "+routepath.Healthz, h.handleHealthz)
	mux.HandleFunc("POST "+routepath.APIValidate, h.handleAPIValidate)

	posts := map[string]http.HandlerFunc{
		routepath.ExplorerValidate:   h.handleValidate,
		routepath.ExplorerRun:        h.handleRun,
		routepath.ExplorerSave:       h.handleSave,
		routepath.ExplorerDelete:     h.handleDelete,
		routepath.ExplorerCodeSample: h.handleCodeSample,
	}
	for path, handler := range posts {
		mux.HandleFunc("POST "+path, handler)
		mux.HandleFunc("GET "+path, httpx.MethodNotAllowed(http.MethodPost))
	}

	mux.HandleFunc("GET "+routepath.Root+"{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, routepath.Explorer, http.StatusFound)
	})
}
