package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

// ctxActor extracts the identity claims injected by the Auth middleware and
// performs a fast-fail check before any service call: user_id and username
// must be present, proving the middleware ran on this route.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, ok := c.Get("user_id").(int)
	if !ok {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get("username").(string)
	if username == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ := c.Get("role").(string)

	return ports.Actor{
		UserID:   userID,
		Username: username,
		Role:     role,
		IP:       c.RealIP(),
	}, nil
}
