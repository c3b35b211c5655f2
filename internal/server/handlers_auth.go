package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/tbruns/accountd/internal/domain"
)

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := s.sessionToken(c)

		account, err := s.auth.ResolveSession(c.Request().Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return c.JSON(403, map[string]string{"message": "forbidden"})
			}
			slog.Error("Failed to resolve session", "error", err)
			return c.String(500, "Internal error")
		}

		c.Set(contextKeyAccount, account)
		return next(c)
	}
}

func (s *Server) handleRegister(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return c.JSON(400, map[string]string{"message": "email and password are required"})
	}

	account, err := s.auth.Register(c.Request().Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return c.JSON(400, map[string]string{"message": fmt.Sprintf("%s already exists", email)})
		}
		slog.Error("Failed to register account", "error", err)
		return c.String(500, "Internal error")
	}

	return c.JSON(200, map[string]string{"email": account.Email, "message": "user created"})
}

func (s *Server) handleLogin(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	valid, err := s.auth.ValidateLogin(c.Request().Context(), email, password)
	if err != nil {
		slog.Error("Failed to validate login", "error", err)
		return c.String(500, "Internal error")
	}
	if !valid {
		return c.JSON(401, map[string]string{"message": "unauthorized"})
	}

	token, err := s.auth.CreateSession(c.Request().Context(), email)
	if err != nil {
		// The account can disappear between validation and session creation;
		// either way the caller gets no token.
		if errors.Is(err, domain.ErrAccountNotFound) {
			return c.JSON(401, map[string]string{"message": "unauthorized"})
		}
		slog.Error("Failed to create session", "error", err)
		return c.String(500, "Internal error")
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to decode existing session cookie, issuing a fresh one", "error", err)
		session, err = s.sessionStore.New(c.Request(), sessionName)
		if err != nil {
			slog.Error("Failed to create session cookie", "error", err)
			return c.String(500, "Internal error")
		}
	}
	session.Values[sessionKeyToken] = token
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Error("Failed to save session cookie", "error", err)
		return c.String(500, "Internal error")
	}

	return c.JSON(200, map[string]string{"email": email, "message": "logged in"})
}

func (s *Server) handleLogout(c echo.Context) error {
	token := s.sessionToken(c)

	// Idempotent: an unknown or already-cleared token is still a successful logout.
	if err := s.auth.DestroySession(c.Request().Context(), token); err != nil {
		slog.Error("Failed to destroy session", "error", err)
		return c.String(500, "Internal error")
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		session, err = s.sessionStore.New(c.Request(), sessionName)
		if err != nil {
			slog.Error("Failed to create session cookie during logout", "error", err)
			return c.String(500, "Internal error")
		}
	}
	session.Options.MaxAge = -1
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Error("Failed to expire session cookie", "error", err)
		return c.String(500, "Internal error")
	}

	return c.Redirect(302, "/")
}
