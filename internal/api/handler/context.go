package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Abdikarim-dev/inventory-MS/internal/api/middleware"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
)

// currentUser extracts the account injected by the Auth middleware. Its
// presence proves authentication ran; handlers on protected routes fail fast
// with 401 if it is missing.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
