package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/northernisles/sage/internal/profile"
	apiv1 "github.com/northernisles/sage/server/router/api/v1"
)

// Server wraps the echo instance serving the v1 API.
type Server struct {
	echoServer *echo.Echo
	Profile    *profile.Profile
}

func NewServer(profile *profile.Profile, apiV1Service *apiv1.APIV1Service) *Server {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(
		echomw.Recover(),
		echomw.RequestID(),
	)

	apiV1Service.Register(echoServer)

	return &Server{
		echoServer: echoServer,
		Profile:    profile,
	}
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", "address", address, "mode", s.Profile.Mode, "version", s.Profile.Version)
	return s.echoServer.Start(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	slog.Info("server stopped")
}
