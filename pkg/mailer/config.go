package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"StockFolio notification"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
	// SanitizeHTML runs caller-supplied HTML through the email sanitizer policy in SendRaw.
	SanitizeHTML bool `env:"MAILER_SANITIZE_HTML" envDefault:"false"`
}
