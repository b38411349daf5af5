package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/vibevoice/pkg/auth"
	"github.com/adrianliechti/vibevoice/pkg/generate"
	"github.com/adrianliechti/vibevoice/pkg/otel"
	"github.com/adrianliechti/vibevoice/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	address string

	auth    auth.Provider
	handler *api.Handler

	router chi.Router
}

func New(address string, provider auth.Provider, service *generate.Service) (*Server, error) {
	handler, err := api.New(service)

	if err != nil {
		return nil, err
	}

	s := &Server{
		address: address,

		auth:    provider,
		handler: handler,

		router: chi.NewRouter(),
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	s.router.Use(logMiddleware)

	s.router.Get("/health", handler.HandleHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		handler.Attach(r)
	})

	return s, nil
}

func (s *Server) ListenAndServe() error {
	var handler http.Handler = s.router

	if otel.EnableTelemetry {
		handler = otelhttp.NewHandler(handler, "http")
	}

	server := &http.Server{
		Addr:    s.address,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := s.auth.Authenticate(r.Context(), r)

		if err != nil {
			writeUnauthorized(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	detail := "unauthorized"

	if err != nil {
		detail = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"elapsed", time.Since(started).Round(time.Millisecond),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
