package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() App {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file", "err", err)
	}

	cfg := App{
		Port:           getenv("APP_PORT", "8080"),
		DatabaseURL:    must("DATABASE_URL"),
		JWTSecret:      getenv("JWT_SECRET", "local_dev_secret"),
		StripeAPIKey:   os.Getenv("STRIPE_API_KEY"),
		StripeWebhook:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getenvInt("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		EmailFrom:      getenv("EMAIL_FROM", os.Getenv("SMTP_USER")),
		ClientURL:      getenv("CLIENT_URL", "http://localhost:5173"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		InvoiceDir:     getenv("INVOICE_DIR", "invoices"),
		Env:            getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
