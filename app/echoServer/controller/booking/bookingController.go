package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"vehiclerental/app/echoServer/jwtx"
	"vehiclerental/model"
	bookingsvc "vehiclerental/service/booking"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// PaymentConfirmation turns a verified payment into a booking, a history
// record, a rendered invoice and a confirmation mail.
// @Summary      Confirm payment and create booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        payload  body  ConfirmPaymentReq  true  "Payment reference"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "payment not confirmed"
// @Failure      500  {object}  map[string]any
// @Router       /booking/payment-confirmation [post]
func (h *Controller) PaymentConfirmation(c echo.Context) error {
	var req ConfirmPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	out, err := h.Svc.Confirm(c.Request().Context(), req.PaymentIntentID)
	if err != nil {
		h.Log.Error("payment confirmation", "err", err, "payment_intent", req.PaymentIntentID)
		switch bookingsvc.Code(err) {
		case bookingsvc.ErrPaymentNotConfirmed:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Payment not confirmed"})
		case bookingsvc.ErrBadMetadata:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payment metadata"})
		case bookingsvc.ErrRenderFailed:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to generate invoice."})
		case bookingsvc.ErrNotifyFailed:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to send email with invoice."})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "Booking successfully created, confirmation email sent, and invoice generated.",
		"booking":     out.Booking,
		"invoicePath": out.InvoicePath,
	})
}

// GET /booking
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("booking list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /booking/my-bookings
func (h *Controller) MyBookings(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.MyBookings(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my bookings", "err", err, "user_id", uid)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No bookings found"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /booking/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if bookingsvc.Code(err) == bookingsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
		}
		h.Log.Error("booking detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, b)
}

// PUT /booking/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	b := &model.Booking{
		ID:          id,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TotalAmount: req.TotalAmount,
		Status:      model.BookingStatus(req.Status),
	}
	if b.Status == "" {
		b.Status = model.BookingPending
	}
	if err := h.Svc.Update(c.Request().Context(), b); err != nil {
		if bookingsvc.Code(err) == bookingsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
		}
		h.Log.Error("booking update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /booking/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if bookingsvc.Code(err) == bookingsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
		}
		h.Log.Error("booking delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Booking deleted successfully"})
}
