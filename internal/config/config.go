package config

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,default=3001"`
	Env      string `env:"APP_ENV,default=production"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	Provider        ProviderName  `env:"MAIL_PROVIDER,default=resend"`
	From            string        `env:"RESEND_FROM,default=onboarding@resend.dev"`
	To              string        `env:"RESEND_TO,default=contact@example.com"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT,default=15s"`

	Resend    ResendConfig
	EmailJS   EmailJSConfig
	SMTP      SMTPConfig
	RateLimit RateLimitConfig

	AuditEnabled bool `env:"AUDIT_ENABLED,default=false"`
}

type ResendConfig struct {
	APIKey  string `env:"RESEND_API_KEY"`
	BaseURL string `env:"RESEND_API_URL,default=https://api.resend.com"`
}

type EmailJSConfig struct {
	ServiceID  string `env:"EMAILJS_SERVICE_ID"`
	TemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	PublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	PrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
	BaseURL    string `env:"EMAILJS_API_URL,default=https://api.emailjs.com"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT,default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
}

type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS,default=0"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

// to help with testing
var (
	envProcess = envconfig.Process
	loadDotenv = godotenv.Load
)

// Load reads an optional .env file and then the process environment. Values
// already present in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	// a missing .env is the normal case outside local development
	_ = loadDotenv()

	var cfg Config
	if err := envProcess(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if strings.TrimSpace(cfg.Port) == "" {
		errors = append(errors, "PORT is required")
	} else if port, err := strconv.Atoi(cfg.Port); err != nil {
		errors = append(errors, "PORT must be a valid number")
	} else if port < 1 || port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	if !slices.Contains(AllowedProviders, cfg.Provider) {
		errors = append(errors, fmt.Sprintf("MAIL_PROVIDER must be one of %v", AllowedProviders))
	}

	if strings.TrimSpace(cfg.From) == "" {
		errors = append(errors, "RESEND_FROM must not be empty")
	}

	if strings.TrimSpace(cfg.To) == "" {
		errors = append(errors, "RESEND_TO must not be empty")
	}

	if cfg.ProviderTimeout <= 0 {
		errors = append(errors, "PROVIDER_TIMEOUT must be positive")
	}

	if cfg.RateLimit.Requests < 0 {
		errors = append(errors, "RATE_LIMIT_REQUESTS must be non-negative")
	}

	if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Window <= 0 {
		errors = append(errors, "RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// Development reports whether internal error details may be returned to
// callers.
func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// ProviderConfigured reports whether the selected provider has the
// credentials it needs. It is informational only; the server starts either way.
func (c *Config) ProviderConfigured() bool {
	switch c.Provider {
	case ProviderResend:
		return c.Resend.APIKey != ""
	case ProviderEmailJS:
		return c.EmailJS.ServiceID != "" && c.EmailJS.TemplateID != "" && c.EmailJS.PublicKey != ""
	case ProviderSMTP:
		return c.SMTP.Host != "" && c.SMTP.Username != "" && c.SMTP.Password != ""
	}
	return false
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
