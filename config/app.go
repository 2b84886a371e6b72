package config

type App struct {
	Port           string `env:"APP_PORT" default:"8080"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	JWTSecret      string `env:"JWT_SECRET,required"`
	StripeAPIKey   string `env:"STRIPE_API_KEY"`
	StripeWebhook  string `env:"STRIPE_WEBHOOK_SECRET"`
	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       int    `env:"SMTP_PORT" default:"587"`
	SMTPUser       string `env:"SMTP_USER"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
	EmailFrom      string `env:"EMAIL_FROM"`
	ClientURL      string `env:"CLIENT_URL" default:"http://localhost:5173"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
	InvoiceDir     string `env:"INVOICE_DIR" default:"invoices"`
	Env            string `env:"APP_ENV" default:"dev"`
}
