package server

import (
	"github.com/labstack/echo/v4"

	"github.com/tbruns/accountd/internal/domain"
)

func (s *Server) handleProfile(c echo.Context) error {
	account, ok := c.Get(contextKeyAccount).(*domain.Account)
	if !ok {
		return c.String(500, "Internal error: no account in context")
	}
	return c.JSON(200, map[string]string{"email": account.Email})
}
