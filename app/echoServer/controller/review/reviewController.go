package review

import (
	"log/slog"
	"net/http"
	"strconv"

	"vehiclerental/app/echoServer/jwtx"
	"vehiclerental/model"
	reviewsvc "vehiclerental/service/review"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type AddReviewReq struct {
	Vehicle int64  `json:"vehicle" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required"`
	Comment string `json:"comment"`
}

// POST /reviews
func (h *Controller) Add(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req AddReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	rv := &model.Review{
		UserID:    uid,
		VehicleID: req.Vehicle,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.Svc.Add(c.Request().Context(), rv); err != nil {
		h.Log.Error("review add", "err", err, "user_id", uid)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, rv)
}

// GET /reviews/vehicle/:vehicleId
func (h *Controller) ByVehicle(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("vehicleId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ByVehicle(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("reviews by vehicle", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /reviews/user/:userId
func (h *Controller) ByUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ByUser(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("reviews by user", "err", err, "user_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}
