package server

import (
	"github.com/labstack/echo/v4"
)

const (
	sessionName     = "accountd_session"
	sessionKeyToken = "token"

	contextKeyAccount = "account"
)

func (s *Server) handleIndex(c echo.Context) error {
	return c.JSON(200, map[string]string{"message": "Bienvenue"})
}

// sessionToken extracts the opaque session token from the request cookie.
// A missing or unreadable cookie comes back as an empty token; the auth
// service treats that as unauthenticated.
func (s *Server) sessionToken(c echo.Context) string {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		return ""
	}
	token, ok := session.Values[sessionKeyToken].(string)
	if !ok {
		return ""
	}
	return token
}
