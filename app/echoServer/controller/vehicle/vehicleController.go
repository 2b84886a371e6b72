package vehicle

import (
	"log/slog"
	"net/http"
	"strconv"

	"vehiclerental/model"
	vehiclesvc "vehiclerental/service/vehicle"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc vehiclesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /vehicles
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("vehicle list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /vehicles/search?type=&minPrice=&maxPrice=&available=
func (h *Controller) Search(c echo.Context) error {
	var f model.VehicleFilter

	if v := c.QueryParam("type"); v != "" {
		f.Type = &v
	}
	if v := c.QueryParam("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid minPrice"})
		}
		f.MinPrice = &p
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid maxPrice"})
		}
		f.MaxPrice = &p
	}
	if v := c.QueryParam("available"); v != "" {
		b := v == "true"
		f.Available = &b
	}

	rows, err := h.Svc.Search(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("vehicle search error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /vehicles/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	v, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if vehiclesvc.Code(err) == vehiclesvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Vehicle not found"})
		}
		h.Log.Error("vehicle detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, v)
}

// GET /vehicles/:id/availability
func (h *Controller) Availability(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ranges, err := h.Svc.Availability(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("vehicle availability error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if ranges == nil {
		ranges = []model.DateRange{}
	}
	return c.JSON(http.StatusOK, echo.Map{"availability": ranges})
}

// POST /vehicles (admin)
func (h *Controller) Create(c echo.Context) error {
	var req VehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	v := vehicleFromReq(req)
	if err := h.Svc.Create(c.Request().Context(), v); err != nil {
		h.Log.Error("vehicle create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, v)
}

// PUT /vehicles/:id (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req VehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	v := vehicleFromReq(req)
	v.ID = id
	if err := h.Svc.Update(c.Request().Context(), v); err != nil {
		if vehiclesvc.Code(err) == vehiclesvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Vehicle not found"})
		}
		h.Log.Error("vehicle update error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, v)
}

// DELETE /vehicles/:id (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if vehiclesvc.Code(err) == vehiclesvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Vehicle not found"})
		}
		h.Log.Error("vehicle delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vehicle deleted successfully"})
}

func vehicleFromReq(req VehicleReq) *model.Vehicle {
	return &model.Vehicle{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Type:        req.Type,
		PricePerDay: req.PricePerDay,
		Available:   req.Available,
		Location:    req.Location,
		Description: req.Description,
		Status:      req.Status,
	}
}
