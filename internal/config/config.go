package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// ErrMisconfigured marks environment values that fail to parse or validate.
var ErrMisconfigured = errors.New("invalid configuration")

type Config struct {
	App      AppConfig
	Log      LogConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	Blog     BlogConfig
}

type AppConfig struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	Port            int           `env:"APP_PORT" envDefault:"3000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type PostgresConfig struct {
	DatabaseURL  string        `env:"DATABASE_URL"`
	Host         string        `env:"PGHOST" envDefault:"localhost"`
	Port         string        `env:"PGPORT" envDefault:"5432"`
	User         string        `env:"PGUSER"`
	Password     string        `env:"PGPASSWORD"`
	Database     string        `env:"PGDATABASE"`
	SSLMode      string        `env:"PGSSLMODE" envDefault:"disable"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	JWTTTL         time.Duration `env:"JWT_TTL" envDefault:"24h"`
	AllowSignup    bool          `env:"ALLOW_SIGNUP" envDefault:"true"`
	CookieName     string        `env:"AUTH_COOKIE_NAME" envDefault:"token"`
	CookieSecure   bool          `env:"AUTH_COOKIE_SECURE" envDefault:"true"`
	CookieSameSite string        `env:"AUTH_COOKIE_SAMESITE" envDefault:"lax"`
	CookiePath     string        `env:"AUTH_COOKIE_PATH" envDefault:"/"`
	CookieDomain   string        `env:"AUTH_COOKIE_DOMAIN"`
	AdminUsername  string        `env:"ADMIN_USERNAME"`
	AdminPassword  string        `env:"ADMIN_PASSWORD"`
}

type BlogConfig struct {
	PageSize int `env:"PAGE_SIZE" envDefault:"10"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMisconfigured, err)
	}
	if cfg.Blog.PageSize < 1 {
		return nil, fmt.Errorf("%w: PAGE_SIZE must be positive, got %d", ErrMisconfigured, cfg.Blog.PageSize)
	}
	return cfg, nil
}

func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// DSN returns DATABASE_URL when set, otherwise a URL assembled from the PG* variables.
func (c *PostgresConfig) DSN() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if c.User == "" || c.Database == "" {
		return "", fmt.Errorf("missing required env: DATABASE_URL or PGUSER/PGDATABASE")
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   c.Database,
	}
	if c.Password == "" {
		u.User = url.User(c.User)
	} else {
		u.User = url.UserPassword(c.User, c.Password)
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
