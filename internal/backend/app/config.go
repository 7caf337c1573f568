package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full process configuration, resolved once at startup from
// the environment.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"dev"`
	Port    int    `env:"PORT" envDefault:"8080"`
	Version string `env:"APP_VERSION" envDefault:"dev"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	DatabasePath string `env:"DATABASE_PATH" envDefault:"robochamp.db"`
	PepperPath   string `env:"PEPPER_PATH" envDefault:"pepper.secret"`

	// Independent secrets per token class; both must be at least 32 bytes.
	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET,required"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET,required"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	TokenIssuer        string        `env:"TOKEN_ISSUER" envDefault:"robochamp"`

	VerificationTTL time.Duration `env:"VERIFICATION_TTL" envDefault:"24h"`
	FrontendURL     string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	// SMTP relay; leave SMTPAddr empty to log mails instead of sending.
	SMTPAddr     string `env:"SMTP_ADDR"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"noreply@robochamp.local"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	ShutdownGrace        time.Duration `env:"SHUTDOWN_GRACE" envDefault:"10s"`
}

// LoadConfig parses the environment into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return Config{}, fmt.Errorf("access and refresh token secrets must differ")
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
