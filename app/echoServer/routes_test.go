package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vehiclerental/app/echoServer/jwtx"
	jwtutil "vehiclerental/util/jwt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const gateSecret = "gate-secret"

func gatedEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		claims, err := jwtx.Claims(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"username": claims["username"]})
	}, echojwt.WithConfig(jwtMiddlewareConfig(gateSecret)))
	return e
}

func TestJWTGate_MissingTokenIs401(t *testing.T) {
	e := gatedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "unauthorized")
}

func TestJWTGate_GarbageTokenIs400(t *testing.T) {
	e := gatedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestJWTGate_ValidTokenPasses(t *testing.T) {
	tok, err := jwtutil.Issue(gateSecret, 7, "mika", false, time.Hour)
	require.NoError(t, err)

	e := gatedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "mika")
}
