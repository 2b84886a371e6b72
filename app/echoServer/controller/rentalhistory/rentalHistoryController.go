package rentalhistory

import (
	"log/slog"
	"net/http"
	"strconv"

	bookingsvc "vehiclerental/service/booking"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bookingsvc.Service
	Log *slog.Logger
}

// GET /rental-history
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.History(c.Request().Context())
	if err != nil {
		h.Log.Error("history list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /rental-history/user/:userId
func (h *Controller) ByUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.HistoryByUser(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("history by user", "err", err, "user_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}
