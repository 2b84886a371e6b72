// app/echoServer/middleware.go
package echoServer

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vehiclerental/app/echoServer/jwtx"
	userrepo "vehiclerental/repository/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func RegisterMiddlewares(e *echo.Echo, allowedOrigins string) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	if allowedOrigins != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     strings.Split(allowedOrigins, ","),
			AllowCredentials: true,
		}))
	} else {
		e.Use(middleware.CORS())
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// ResolveIdentity runs after token verification. It re-resolves the subject
// against the users table so tokens for deleted accounts stop working, and
// stashes user_id / username / is_admin for the handlers.
func ResolveIdentity(ur userrepo.Repo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := jwtx.Claims(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}

			sub, ok := claims["sub"].(float64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}

			u, err := ur.ByID(c.Request().Context(), int64(sub))
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return c.JSON(http.StatusForbidden, echo.Map{"message": "user not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
			}

			c.Set("user_id", u.ID)
			c.Set("username", u.Username)
			c.Set("is_admin", u.IsAdmin())
			return next(c)
		}
	}
}

// AdminOnly denies requests whose resolved identity lacks the admin role.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isAdmin, _ := c.Get("is_admin").(bool); !isAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "access denied"})
			}
			return next(c)
		}
	}
}
