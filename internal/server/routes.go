package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	s.echo.GET("/", s.handleIndex)

	// Account and session lifecycle
	s.echo.POST("/users", s.handleRegister)
	s.echo.POST("/sessions", s.handleLogin)
	s.echo.DELETE("/sessions", s.handleLogout)

	// Session-scoped routes
	s.echo.GET("/profile", s.handleProfile, s.requireAuth)
}
