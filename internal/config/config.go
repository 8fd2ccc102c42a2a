package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	BackendEmailJS = "emailjs"
	BackendSMTP    = "smtp"

	defaultPort       = "8000"
	defaultEmailJSURL = "https://api.emailjs.com/api/v1.0/email/send"
)

// Config holds all configuration for the email microservice. It is built
// once at startup and treated as read-only afterwards.
type Config struct {
	Port        string
	LogLevel    string
	RabbitMQURL string
	Backend     string
	EmailJS     EmailJSConfig
	SMTP        SMTPConfig
}

// EmailJSConfig holds the static EmailJS credentials embedded in every
// outbound payload.
type EmailJSConfig struct {
	APIURL     string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
}

// SMTPConfig holds the alternate SMTP delivery backend settings. Only
// validated when Backend is "smtp".
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
}

// Load reads configuration from environment variables. It fails listing
// every missing required variable rather than embedding empty values into
// outbound payloads.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", defaultPort),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		Backend:     getEnv("EMAIL_BACKEND", BackendEmailJS),
		EmailJS: EmailJSConfig{
			APIURL:     getEnv("EMAILJS_API_URL", defaultEmailJSURL),
			ServiceID:  os.Getenv("SERVICE_ID"),
			TemplateID: os.Getenv("TEMPLATE_ID"),
			PublicKey:  os.Getenv("PUBLIC_KEY"),
			PrivateKey: os.Getenv("PRIVATE_KEY"),
		},
	}

	if err := cfg.loadSMTP(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadSMTP() error {
	c.SMTP = SMTPConfig{
		Host:      os.Getenv("SMTP_HOST"),
		Username:  os.Getenv("SMTP_USERNAME"),
		Password:  os.Getenv("SMTP_PASSWORD"),
		FromEmail: os.Getenv("SMTP_FROM_EMAIL"),
	}

	portStr := os.Getenv("SMTP_PORT")
	if portStr == "" {
		return nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT %q: %w", portStr, err)
	}
	c.SMTP.Port = port
	return nil
}

func (c *Config) validate() error {
	var missing []string

	if c.RabbitMQURL == "" {
		missing = append(missing, "RABBITMQ_URL")
	}

	switch c.Backend {
	case BackendEmailJS:
		if c.EmailJS.ServiceID == "" {
			missing = append(missing, "SERVICE_ID")
		}
		if c.EmailJS.TemplateID == "" {
			missing = append(missing, "TEMPLATE_ID")
		}
		if c.EmailJS.PublicKey == "" {
			missing = append(missing, "PUBLIC_KEY")
		}
		if c.EmailJS.PrivateKey == "" {
			missing = append(missing, "PRIVATE_KEY")
		}
	case BackendSMTP:
		if c.SMTP.Host == "" {
			missing = append(missing, "SMTP_HOST")
		}
		if c.SMTP.Port == 0 {
			missing = append(missing, "SMTP_PORT")
		}
		if c.SMTP.FromEmail == "" {
			missing = append(missing, "SMTP_FROM_EMAIL")
		}
	default:
		return fmt.Errorf("unknown EMAIL_BACKEND %q, expected %q or %q", c.Backend, BackendEmailJS, BackendSMTP)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
