package smtp

import "time"

// Config holds SMTP relay configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port int    `env:"SMTP_PORT" envDefault:"587"`
	// UseTLS selects STARTTLS on a plain connection when true and
	// implicit TLS from the first byte when false.
	UseTLS      bool          `env:"SMTP_USE_TLS" envDefault:"true"`
	Username    string        `env:"SMTP_USER"`
	Password    string        `env:"SMTP_PASSWORD"`
	SenderEmail string        `env:"SMTP_FROM_EMAIL"`
	SenderName  string        `env:"SMTP_FROM_NAME" envDefault:"StockFolio"`
	Timeout     time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
}

// Configured reports whether every field needed to deliver is set.
func (c Config) Configured() bool {
	return c.Host != "" && c.Port > 0 && c.Username != "" && c.Password != "" && c.SenderEmail != ""
}
