package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/naka-gawa/w3c-ie-stats/internal/snapshot"
	"go.uber.org/zap"
)

func newRouter(logger *zap.Logger, snap *snapshot.Snapshot) http.Handler {
	h := &handler{
		snap:   snap,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(zapRequestLogger(logger))

	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", h.handleSummary)

		r.Get("/experts", h.handleExperts)
		r.Get("/experts/{token}", h.handleExpert)

		r.Get("/groups", h.handleGroups)
		r.Get("/groups/{id}/experts", h.handleGroupExperts)

		r.Get("/affiliations", h.handleAffiliations)
		r.Get("/affiliations/{token}", h.handleAffiliation)
	})

	return r
}

func zapRequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info(
				"http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
