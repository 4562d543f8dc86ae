package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerSnapshotRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/snapshot", handler.GetSnapshot)
	mux.HandleFunc("GET /v1/roster", handler.ListRoster)
}
