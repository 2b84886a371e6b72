// Package main vehicle rental API.
//
// @title           Vehicle Rental API
// @version         1.0
// @description     Vehicle rental service (accounts, vehicles, bookings, payments, reviews, support).
// @BasePath        /api
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"vehiclerental/app/echoServer"
	adminctrl "vehiclerental/app/echoServer/controller/admin"
	authctrl "vehiclerental/app/echoServer/controller/auth"
	bookingctrl "vehiclerental/app/echoServer/controller/booking"
	dashboardctrl "vehiclerental/app/echoServer/controller/dashboard"
	paymentctrl "vehiclerental/app/echoServer/controller/payment"
	historyctrl "vehiclerental/app/echoServer/controller/rentalhistory"
	reviewctrl "vehiclerental/app/echoServer/controller/review"
	supportctrl "vehiclerental/app/echoServer/controller/support"
	vehiclectrl "vehiclerental/app/echoServer/controller/vehicle"
	"vehiclerental/app/echoServer/validation"
	"vehiclerental/config"
	bookingrepo "vehiclerental/repository/booking"
	paymentrepo "vehiclerental/repository/payment"
	reviewrepo "vehiclerental/repository/review"
	striperepo "vehiclerental/repository/stripe"
	supportrepo "vehiclerental/repository/support"
	userrepo "vehiclerental/repository/user"
	vehiclerepo "vehiclerental/repository/vehicle"
	authsvc "vehiclerental/service/auth"
	bookingsvc "vehiclerental/service/booking"
	dashboardsvc "vehiclerental/service/dashboard"
	paymentsvc "vehiclerental/service/payment"
	reviewsvc "vehiclerental/service/review"
	supportsvc "vehiclerental/service/support"
	usersvc "vehiclerental/service/user"
	vehiclesvc "vehiclerental/service/vehicle"
	"vehiclerental/util/database"
	"vehiclerental/util/invoice"
	"vehiclerental/util/mailer"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.InvoiceDir, 0o755); err != nil {
		log.Error("invoice dir", "err", err, "dir", cfg.InvoiceDir)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	vr := vehiclerepo.New(db)
	br := bookingrepo.New(db)
	pr := paymentrepo.New(db)
	rr := reviewrepo.New(db)
	sr := supportrepo.New(db)
	gw := striperepo.NewHTTP(cfg.StripeAPIKey, cfg.StripeWebhook)

	// side effects
	pdf := invoice.NewPDF()
	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)

	// services
	as := authsvc.New(ur, br, rr, mail, cfg.JWTSecret, time.Hour, cfg.ClientURL)
	vs := vehiclesvc.New(vr)
	bs := bookingsvc.New(br, gw, pdf, mail, cfg.InvoiceDir)
	ps := paymentsvc.New(gw, pr, bs, cfg.ClientURL, log)
	rs := reviewsvc.New(rr)
	ss := supportsvc.New(sr)
	ds := dashboardsvc.New(br, pr, rr)
	us := usersvc.New(ur)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	vehicleC := &vehiclectrl.Controller{Svc: vs, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, V: v, Log: log}
	supportC := &supportctrl.Controller{Svc: ss, V: v, Log: log}
	historyC := &historyctrl.Controller{Svc: bs, Log: log}
	dashboardC := &dashboardctrl.Controller{Svc: ds, Log: log}
	adminC := &adminctrl.Controller{Svc: us, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e, cfg.AllowedOrigins)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Vehicle:   vehicleC,
		Booking:   bookingC,
		Payment:   paymentC,
		Review:    reviewC,
		Support:   supportC,
		History:   historyC,
		Dashboard: dashboardC,
		Admin:     adminC,

		Users:     ur,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
