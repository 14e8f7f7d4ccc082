package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Source names accepted by STOCK_SOURCE and CREDIT_SOURCE.
const (
	SourceFixture = "fixture"
	SourceBackend = "backend"
)

// AppConfig holds everything the dashboard reads from the environment.
type AppConfig struct {
	Port       string        `env:"APP_PORT" envDefault:"8080"`
	APIURL     string        `env:"API_URL" envDefault:"https://httpbin.org/get"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	SessionSecret string        `env:"SESSION_SECRET" envDefault:"mekgoro-dev-secret"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	StockSource  string `env:"STOCK_SOURCE" envDefault:"fixture"`
	CreditSource string `env:"CREDIT_SOURCE" envDefault:"fixture"`

	SupportWhatsApp string `env:"SUPPORT_WHATSAPP" envDefault:"0712345678"`
	PhoneRegion     string `env:"PHONE_REGION" envDefault:"ZA"`

	BankName          string `env:"BANK_NAME" envDefault:"FNB Business"`
	BankAccount       string `env:"BANK_ACCOUNT" envDefault:"1234567890"`
	BankBranch        string `env:"BANK_BRANCH" envDefault:"250655"`
	PaymentGatewayURL string `env:"PAYMENT_GATEWAY_URL"`
}

// Load reads an optional .env file and parses the environment into AppConfig.
func Load() (AppConfig, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c AppConfig) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	for name, v := range map[string]string{"STOCK_SOURCE": c.StockSource, "CREDIT_SOURCE": c.CreditSource} {
		if v != SourceFixture && v != SourceBackend {
			return fmt.Errorf("%s must be %q or %q, got %q", name, SourceFixture, SourceBackend, v)
		}
	}
	return nil
}
