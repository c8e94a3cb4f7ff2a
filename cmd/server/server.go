package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mcristea/roomcast/internal/chat"
	"github.com/mcristea/roomcast/internal/config"
	"github.com/mcristea/roomcast/internal/handlers"
	ws "github.com/mcristea/roomcast/internal/websocket"
)

// Server owns the process-wide state: one room store, one registry, one hub,
// constructed once at startup. There are no package-level globals.
type Server struct {
	cfg config.Config
	log *slog.Logger
	hub *ws.Hub
	srv *http.Server
}

func NewServer(cfg config.Config, logger *slog.Logger) *Server {
	store := chat.NewRoomStore()
	registry := chat.NewRegistry()
	hub := ws.NewHub(logger, store, registry, cfg.MaxFileBytes)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	registerRoutes(router,
		handlers.NewWebSocketHandler(hub, logger, cfg.AllowedOrigins),
		handlers.NewRoomHandler(store),
	)

	return &Server{
		cfg: cfg,
		log: logger,
		hub: hub,
		srv: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down the HTTP listener and
// disconnects every client.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", s.cfg.HTTPAddr, "env", s.cfg.Env)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.srv.Shutdown(shutdownCtx)
	s.hub.Shutdown()
	return err
}
