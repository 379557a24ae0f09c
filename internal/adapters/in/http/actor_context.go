package http

import (
	"net/http"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the authentication gateway in front of this
// service. The engine never sees credentials; it trusts the gateway's
// resolved identity.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

const actorContextKey = "parcelflow.actor"

// ActorMiddleware resolves the acting user from the gateway identity headers
// and rejects requests without a valid identity.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := kernel.UUIDFromString(c.Request().Header.Get(HeaderUserID))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid user identity")
			}

			role := actor.Role(c.Request().Header.Get(HeaderUserRole))
			if err := role.Validate(); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid user role")
			}

			c.Set(actorContextKey, actor.Actor{
				ID:       userID,
				Role:     role,
				IsActive: true,
			})
			return next(c)
		}
	}
}

// actorFrom returns the acting user stored by ActorMiddleware.
func actorFrom(c echo.Context) (actor.Actor, bool) {
	a, ok := c.Get(actorContextKey).(actor.Actor)
	return a, ok
}
