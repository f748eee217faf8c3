package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings,
//   and business rules the booking engine must never guess (working-hours boundary, hold window)
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Auth    AuthConfig
	Booking BookingConfig
	Webhook WebhookConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Pending-Token"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

// AuthConfig verifies access tokens minted by the external auth provider.
type AuthConfig struct {
	JWTSecret  string `envconfig:"AUTH_JWT_SECRET" required:"true"`
	Issuer     string `envconfig:"AUTH_JWT_ISSUER"`
	CookieName string `envconfig:"AUTH_COOKIE_NAME" default:"access_token"`
}

type BookingConfig struct {
	WorkdayStart          string        `envconfig:"BOOKING_WORKDAY_START" default:"00:00"`
	WorkdayEnd            string        `envconfig:"BOOKING_WORKDAY_END" required:"true"`
	HoldDuration          time.Duration `envconfig:"BOOKING_HOLD_DURATION" required:"true"`
	TransitionMaxAttempts int           `envconfig:"BOOKING_TRANSITION_MAX_ATTEMPTS" default:"3"`
}

// WebhookConfig is intentionally not required at load time: the webhook endpoint
// fails closed on its own when the secret is absent.
type WebhookConfig struct {
	Secret string `envconfig:"PAYMENT_WEBHOOK_SECRET"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c BookingConfig) Validate() error {
	if c.WorkdayEnd == "" {
		return fmt.Errorf("BOOKING_WORKDAY_END must be set")
	}
	if c.HoldDuration <= 0 {
		return fmt.Errorf("BOOKING_HOLD_DURATION must be positive, got %s", c.HoldDuration)
	}
	if c.TransitionMaxAttempts < 1 {
		return fmt.Errorf("BOOKING_TRANSITION_MAX_ATTEMPTS must be at least 1, got %d", c.TransitionMaxAttempts)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Booking.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid booking config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		Auth: AuthConfig{
			JWTSecret:  "test-jwt-secret",
			CookieName: "access_token",
		},
		Booking: BookingConfig{
			WorkdayStart:          "08:00",
			WorkdayEnd:            "18:00",
			HoldDuration:          30 * time.Minute,
			TransitionMaxAttempts: 3,
		},
		Webhook: WebhookConfig{
			Secret: "test-webhook-secret",
		},
	}
}
