package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/csmplay/csm-mapban-sub000/internal/hub"
	"github.com/csmplay/csm-mapban-sub000/internal/ws"
)

func SetupRoutes(h *hub.Hub, originPatterns []string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/lobbies", CreateLobby(h, logger))
	r.Get("/lobbies/{code}", GetLobbyState(h))
	r.Delete("/lobbies/{code}", DeleteLobby(h, logger))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, originPatterns, logger))
	return r
}
