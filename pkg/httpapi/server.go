package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/idleman/staabler/pkg/logstream"
)

// StartServer starts the HTTP control plane with all routes configured,
// blocking until the server returns (normally via a listen error).
func StartServer(stream *logstream.Stream, report *logstream.RecoveryReport, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(stream, report, metrics)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint, unprotected for scraping.
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/healthz", metrics.InstrumentHandler("GET", "/healthz", server.handleHealth))
	r.Get("/stats", metrics.InstrumentHandler("GET", "/stats", server.handleStats))
	r.Get("/explain", metrics.InstrumentHandler("GET", "/explain", server.handleExplain))

	addr := config.Bind
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := config.Port
	if port == 0 {
		port = 8080
	}
	return http.ListenAndServe(addr+":"+strconv.Itoa(port), r)
}
