// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims returns the verified token claims placed in the context by the
// jwt middleware.
func Claims(c echo.Context) (jwt.MapClaims, error) {
	switch v := c.Get("user").(type) {
	case *jwt.Token:
		if claims, ok := v.Claims.(jwt.MapClaims); ok {
			return claims, nil
		}
	case jwt.MapClaims:
		return v, nil
	}
	return nil, errors.New("no jwt claims in context")
}

// UserID returns the resolved subject id set by the identity middleware.
func UserID(c echo.Context) (int64, error) {
	if id, ok := c.Get("user_id").(int64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("no user id in context")
}

func IsAdmin(c echo.Context) bool {
	isAdmin, _ := c.Get("is_admin").(bool)
	return isAdmin
}
