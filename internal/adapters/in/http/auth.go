package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

const actorContextKey = "actor"

// errNoActor is returned when a handler runs without the auth middleware
// having stored a verified actor. A routing mistake, not a user error.
var errNoActor = errs.NewUnauthorizedError("actor")

// BearerAuth resolves the Authorization bearer token into a verified actor
// and stores it on the request context. Requests without a valid token get
// 401 before reaching a handler.
func BearerAuth(resolver ports.TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			actor, err := resolver.Resolve(ctx.Request().Context(), token)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "invalid credentials",
				})
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

func actorFrom(ctx echo.Context) (kernel.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(kernel.Actor)
	return actor, ok
}
