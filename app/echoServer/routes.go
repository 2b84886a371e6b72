package echoServer

import (
	"errors"
	"net/http"

	"vehiclerental/app/echoServer/controller/admin"
	"vehiclerental/app/echoServer/controller/auth"
	"vehiclerental/app/echoServer/controller/booking"
	"vehiclerental/app/echoServer/controller/dashboard"
	"vehiclerental/app/echoServer/controller/payment"
	"vehiclerental/app/echoServer/controller/rentalhistory"
	"vehiclerental/app/echoServer/controller/review"
	"vehiclerental/app/echoServer/controller/support"
	"vehiclerental/app/echoServer/controller/vehicle"
	userrepo "vehiclerental/repository/user"
	jwtutil "vehiclerental/util/jwt"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Vehicle   *vehicle.Controller
	Booking   *booking.Controller
	Payment   *payment.Controller
	Review    *review.Controller
	Support   *support.Controller
	History   *rentalhistory.Controller
	Dashboard *dashboard.Controller
	Admin     *admin.Controller

	Users     userrepo.Repo
	JWTSecret string
}

// jwtErrorHandler maps token failures onto the API error shapes: an
// absent token is 401, a present but unusable one is 400.
func jwtErrorHandler(c echo.Context, err error) error {
	if errors.Is(err, echojwt.ErrJWTMissing) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid or expired token"})
}

func jwtMiddlewareConfig(secret string) echojwt.Config {
	return echojwt.Config{
		TokenLookup: "header:Authorization",
		ParseTokenFunc: func(_ echo.Context, auth string) (interface{}, error) {
			claims, err := jwtutil.ParseAuth(auth, secret)
			if err != nil {
				return nil, err
			}
			return jwt.MapClaims(claims), nil
		},
		ErrorHandler: jwtErrorHandler,
	}
}

func Register(e *echo.Echo, c C) {
	jwtConfig := jwtMiddlewareConfig(c.JWTSecret)

	// Public
	pub := e.Group("/api")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)
	pub.POST("/auth/request-password-reset", c.Auth.RequestPasswordReset)
	pub.POST("/auth/reset-password", c.Auth.ResetPassword)

	pub.GET("/vehicles", c.Vehicle.List)
	pub.GET("/vehicles/search", c.Vehicle.Search)
	pub.GET("/vehicles/:id", c.Vehicle.Detail)
	pub.GET("/vehicles/:id/availability", c.Vehicle.Availability)

	adminMW := []echo.MiddlewareFunc{
		echojwt.WithConfig(jwtConfig),
		ResolveIdentity(c.Users),
		AdminOnly(),
	}
	pub.POST("/vehicles", c.Vehicle.Create, adminMW...)
	pub.PUT("/vehicles/:id", c.Vehicle.Update, adminMW...)
	pub.DELETE("/vehicles/:id", c.Vehicle.Delete, adminMW...)

	pub.GET("/reviews/vehicle/:vehicleId", c.Review.ByVehicle)

	// gateway callback: signature-verified, not token-authenticated
	pub.POST("/payments/webhook", c.Payment.HandleWebhook)

	// Authenticated
	authG := e.Group("/api")
	authG.Use(echojwt.WithConfig(jwtConfig))
	authG.Use(ResolveIdentity(c.Users))

	authG.GET("/auth/profile", c.Auth.Profile)
	authG.PUT("/auth/profile", c.Auth.UpdateProfile)

	authG.POST("/booking/payment-confirmation", c.Booking.PaymentConfirmation)
	authG.GET("/booking/my-bookings", c.Booking.MyBookings)
	authG.GET("/booking/:id", c.Booking.Detail)

	authG.POST("/payments/create-checkout-session", c.Payment.CreateCheckoutSession)
	authG.POST("/payments/success", c.Payment.HandleSuccess)
	authG.GET("/payments", c.Payment.List)
	authG.GET("/payments/:id", c.Payment.Detail)
	authG.PUT("/payments/:id", c.Payment.Update, AdminOnly())
	authG.DELETE("/payments/:id", c.Payment.Delete, AdminOnly())

	authG.POST("/reviews", c.Review.Add)
	authG.GET("/reviews/user/:userId", c.Review.ByUser)

	authG.POST("/support", c.Support.Create)
	authG.GET("/support", c.Support.List)
	authG.GET("/support/:id", c.Support.Detail)

	authG.GET("/rental-history", c.History.List)
	authG.GET("/rental-history/user/:userId", c.History.ByUser)

	authG.GET("/dashboard", c.Dashboard.Show)

	// Admin
	adminG := e.Group("/api/admin")
	adminG.Use(echojwt.WithConfig(jwtConfig))
	adminG.Use(ResolveIdentity(c.Users), AdminOnly())

	adminG.GET("/users", c.Admin.ListUsers)
	adminG.GET("/users/:id", c.Admin.UserDetail)
	adminG.PUT("/users/:id", c.Admin.UpdateUser)
	adminG.DELETE("/users/:id", c.Admin.DeleteUser)

	adminG.GET("/vehicles", c.Vehicle.List)
	adminG.POST("/vehicles", c.Vehicle.Create)
	adminG.GET("/vehicles/:id", c.Vehicle.Detail)
	adminG.PUT("/vehicles/:id", c.Vehicle.Update)
	adminG.DELETE("/vehicles/:id", c.Vehicle.Delete)

	adminG.GET("/bookings", c.Booking.List)
	adminG.GET("/bookings/:id", c.Booking.Detail)
	adminG.PUT("/bookings/:id", c.Booking.Update)
	adminG.DELETE("/bookings/:id", c.Booking.Delete)

	adminG.PUT("/support/:id", c.Support.Update)
	adminG.DELETE("/support/:id", c.Support.Delete)
}
