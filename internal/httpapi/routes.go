package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/volley-rotation-board/internal/config"
	"github.com/DoyleJ11/volley-rotation-board/internal/hub"
	"github.com/DoyleJ11/volley-rotation-board/internal/ws"
)

func SetupRoutes(h *hub.Hub, cfg config.Config, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.IsDevelopment() {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz(h))
	// the websocket route must not sit behind the request timeout
	r.Get("/ws", ws.Handler(h, log, cfg.CompactBreakpoint))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Post("/boards", CreateBoard(h, cfg.DragPolicy, log))
		r.Route("/boards/{code}", func(r chi.Router) {
			r.Get("/", GetBoard(h))
			r.Delete("/", DeleteBoard(h))
			r.Get("/court", CourtPage(h))
			r.Get("/court.webp", CourtImage(h, log))
		})
	})
	return r
}
