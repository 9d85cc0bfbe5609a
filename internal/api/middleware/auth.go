package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/ports"
	"github.com/Abdikarim-dev/inventory-MS/internal/pkg/metrics"
	"github.com/Abdikarim-dev/inventory-MS/internal/pkg/token"
)

// UserContextKey is where the authenticated account is stored on the echo
// context. Handlers and RequireRoles read it back.
const UserContextKey = "auth_user"

// Auth validates the bearer token and attaches the live account to the
// context. The token alone is not enough: the account is re-resolved from the
// store on every request so that deletion and role changes after issuance
// take effect immediately. A soft-deleted account never authenticates, even
// with an unexpired token.
func Auth(issuer *token.Issuer, repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := issuer.Verify(parts[1])
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := repo.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenRejectionsTotal.WithLabelValues("account_gone").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}
			if user.IsDeleted {
				metrics.TokenRejectionsTotal.WithLabelValues("account_gone").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
