package auth

import (
	"log/slog"
	"net/http"

	"vehiclerental/app/echoServer/jwtx"
	"vehiclerental/model"
	authsvc "vehiclerental/service/auth"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new user
// @Summary      Register user
// @Description  Register a new account with username/email uniqueness and validation
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "username/email already taken"
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /auth/register [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	u, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrUsernameTaken:
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		case authsvc.ErrEmailTaken:
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("register failed", "err", err, "req_id", rid, "path", c.Path())
			return echo.NewHTTPError(http.StatusInternalServerError, "register failed")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user":    u,
	})
}

// Login
// @Summary      Login
// @Description  Login with username + password, returns JWT and identity summary
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /auth/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	u, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "invalid username or password")
		case authsvc.ErrInvalidCreds:
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("login failed", "err", err, "req_id", rid, "path", c.Path())
			return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":       u.ID,
			"username": u.Username,
			"isAdmin":  u.IsAdmin(),
		},
	})
}

// GET /auth/profile
func (ct *Controller) Profile(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := ct.Svc.Profile(c.Request().Context(), uid)
	if err != nil {
		if authsvc.Code(err) == authsvc.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		ct.Log.Error("profile fetch failed", "err", err, "user_id", uid)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": p})
}

// PUT /auth/profile
func (ct *Controller) UpdateProfile(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req model.UpdateProfileReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	u, err := ct.Svc.UpdateProfile(c.Request().Context(), uid, req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		case authsvc.ErrUsernameTaken, authsvc.ErrEmailTaken:
			return echo.NewHTTPError(http.StatusConflict, "username or email already taken")
		default:
			ct.Log.Error("profile update failed", "err", err, "user_id", uid)
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}
	}
	return c.JSON(http.StatusOK, u)
}

// POST /auth/request-password-reset
func (ct *Controller) RequestPasswordReset(c echo.Context) error {
	var req model.ResetRequestReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	if err := ct.Svc.RequestReset(c.Request().Context(), req.Email); err != nil {
		if authsvc.Code(err) == authsvc.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		ct.Log.Error("reset request failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password reset link sent"})
}

// POST /auth/reset-password
func (ct *Controller) ResetPassword(c echo.Context) error {
	var req model.ResetPasswordReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	if err := ct.Svc.CompleteReset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		if authsvc.Code(err) == authsvc.ErrBadResetToken {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired reset token")
		}
		ct.Log.Error("reset failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password reset successful"})
}
