package dashboard

import (
	"log/slog"
	"net/http"

	"vehiclerental/app/echoServer/jwtx"
	dashboardsvc "vehiclerental/service/dashboard"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc dashboardsvc.Service
	Log *slog.Logger
}

// GET /dashboard
func (h *Controller) Show(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	d, err := h.Svc.ForUser(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("dashboard", "err", err, "user_id", uid)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, d)
}
