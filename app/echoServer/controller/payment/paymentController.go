package payment

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	paymentsvc "vehiclerental/service/payment"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc paymentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CheckoutSessionReq struct {
	TotalAmount float64           `json:"totalAmount" validate:"required,gt=0"`
	Metadata    map[string]string `json:"metadata"`
}

type PaymentSuccessReq struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type UpdatePaymentReq struct {
	Amount float64 `json:"amount" validate:"omitempty,gt=0"`
	Status string  `json:"status"`
}

// HandleWebhook accepts the raw gateway callback. The body is only parsed
// after the signature header checks out.
func (h *Controller) HandleWebhook(c echo.Context) error {
	sig := c.Request().Header.Get("Stripe-Signature")
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable body"})
	}

	if err := h.Svc.HandleWebhook(c.Request().Context(), sig, raw); err != nil {
		h.Log.Error("webhook error", "err", err)
		if paymentsvc.Code(err) == paymentsvc.ErrBadSignature {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Webhook signature verification failed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

// POST /payments/create-checkout-session
func (h *Controller) CreateCheckoutSession(c echo.Context) error {
	var req CheckoutSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	url, err := h.Svc.CreateCheckoutSession(c.Request().Context(), req.TotalAmount, req.Metadata)
	if err != nil {
		h.Log.Error("create checkout session", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

// POST /payments/success
func (h *Controller) HandleSuccess(c echo.Context) error {
	var req PaymentSuccessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	b, err := h.Svc.HandleSuccess(c.Request().Context(), req.SessionID)
	if err != nil {
		h.Log.Error("payment success", "err", err, "session", req.SessionID)
		if paymentsvc.Code(err) == paymentsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found."})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Payment not completed."})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment processed successfully!", "booking": b})
}

// GET /payments
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("payment list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// PUT /payments/:id (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdatePaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	p, err := h.Svc.Update(c.Request().Context(), id, req.Amount, req.Status)
	if err != nil {
		if paymentsvc.Code(err) == paymentsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Payment not found"})
		}
		h.Log.Error("payment update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, p)
}

// DELETE /payments/:id (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if paymentsvc.Code(err) == paymentsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Payment not found"})
		}
		h.Log.Error("payment delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment deleted successfully"})
}

// GET /payments/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	p, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if paymentsvc.Code(err) == paymentsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Payment not found"})
		}
		h.Log.Error("payment detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, p)
}
