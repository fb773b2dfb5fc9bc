package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// loggingMiddleware logs request details and latency.
func loggingMiddleware(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

// NewRouter creates and configures the HTTP router.
func NewRouter(handler *Handler, log *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware(log))

	r.HandleFunc("/index", handler.HandleIndex).Methods("POST")
	r.HandleFunc("/search", handler.HandleSearch).Methods("POST")
	r.HandleFunc("/analyze", handler.HandleAnalyze).Methods("POST")
	r.HandleFunc("/stats", handler.HandleStats).Methods("GET")
	r.HandleFunc("/health", handler.HandleHealth).Methods("GET")

	return r
}
