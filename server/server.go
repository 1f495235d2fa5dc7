package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/wingman-search/config"
	"github.com/adrianliechti/wingman-search/pkg/auth"
	"github.com/adrianliechti/wingman-search/pkg/otel"
	"github.com/adrianliechti/wingman-search/server/api"
	"github.com/adrianliechti/wingman-search/server/mcp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config

	api *api.Handler
	mcp *mcp.Handler
}

func New(cfg *config.Config) (*Server, error) {
	apiHandler, err := api.New(cfg)

	if err != nil {
		return nil, err
	}

	mcpHandler, err := mcp.New(cfg)

	if err != nil {
		return nil, err
	}

	s := &Server{
		Config: cfg,

		api: apiHandler,
		mcp: mcpHandler,
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.Authorizers...))

		s.mcp.Attach(r)

		r.Route("/v1", func(r chi.Router) {
			s.api.Attach(r)
		})
	})

	if otel.EnableTelemetry {
		return otelhttp.NewHandler(r, "wingman-search")
	}

	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.Address,
		Handler: s.Handler(),

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		server.Shutdown(shutdownCtx)
	}()

	slog.Info("server listening", "address", s.Address)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
