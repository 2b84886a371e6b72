package support

import (
	"log/slog"
	"net/http"
	"strconv"

	"vehiclerental/app/echoServer/jwtx"
	"vehiclerental/model"
	supportsvc "vehiclerental/service/support"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc supportsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateTicketReq struct {
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdateTicketReq struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=open closed resolved"`
}

// POST /support
func (h *Controller) Create(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req CreateTicketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	t := &model.SupportTicket{
		UserID:      uid,
		Subject:     req.Subject,
		Description: req.Description,
	}
	if err := h.Svc.Create(c.Request().Context(), t); err != nil {
		h.Log.Error("ticket create", "err", err, "user_id", uid)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, t)
}

// GET /support
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("ticket list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /support/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	t, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if supportsvc.Code(err) == supportsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Support ticket not found"})
		}
		h.Log.Error("ticket detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, t)
}

// PUT /support/:id (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateTicketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	t, err := h.Svc.Update(c.Request().Context(), id, req.Subject, req.Description, req.Status)
	if err != nil {
		if supportsvc.Code(err) == supportsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Support ticket not found"})
		}
		h.Log.Error("ticket update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, t)
}

// DELETE /support/:id (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if supportsvc.Code(err) == supportsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Support ticket not found"})
		}
		h.Log.Error("ticket delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Support ticket deleted successfully"})
}
