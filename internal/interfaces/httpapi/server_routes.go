package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /internal/usage/recent", handler.RecentUsage)
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /player/{playerName}", handler.GetPlayerProfile)
	mux.HandleFunc("GET /compare", handler.ComparePlayers)
	mux.HandleFunc("POST /lineup", handler.AggregateLineup)
	mux.HandleFunc("POST /recommendations/categories", handler.RecommendPlayers)
}
