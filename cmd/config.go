package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPPort   string `mapstructure:"HTTP_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	Store      string `mapstructure:"STORE"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSslMode  string `mapstructure:"DB_SSLMODE"`
	// DBConnectTimeout bounds the connection retries at startup.
	DBConnectTimeout time.Duration `mapstructure:"DB_CONNECT_TIMEOUT"`
	// CatalogFile optionally seeds restaurants and menu items at startup.
	CatalogFile string `mapstructure:"CATALOG_FILE"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	WSPingInterval time.Duration `mapstructure:"WS_PING_INTERVAL"`
	WSPongWait     time.Duration `mapstructure:"WS_PONG_WAIT"`
	WSSendBuffer   int           `mapstructure:"WS_SEND_BUFFER"`

	AssignmentSchedule string `mapstructure:"ASSIGNMENT_SCHEDULE"`
	AssignmentPolicy   string `mapstructure:"ASSIGNMENT_POLICY"`

	// RabbitMQURL enables the cross-instance live message bridge when set.
	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	RabbitMQExchange string `mapstructure:"RABBITMQ_EXCHANGE"`
}

var defaults = map[string]any{
	"HTTP_PORT":           "8080",
	"LOG_LEVEL":           "info",
	"STORE":               StorePostgres,
	"DB_HOST":             "localhost",
	"DB_PORT":             "5432",
	"DB_USER":             "postgres",
	"DB_PASSWORD":         "",
	"DB_NAME":             "foodorder",
	"DB_SSLMODE":          "disable",
	"DB_CONNECT_TIMEOUT":  "30s",
	"CATALOG_FILE":        "",
	"JWT_SECRET":          "",
	"WS_PING_INTERVAL":    "30s",
	"WS_PONG_WAIT":        "60s",
	"WS_SEND_BUFFER":      64,
	"ASSIGNMENT_SCHEDULE": "*/5 * * * * *",
	"ASSIGNMENT_POLICY":   "nearest",
	"RABBITMQ_URL":        "",
	"RABBITMQ_EXCHANGE":   "order_live_fanout",
}

// LoadConfig reads envFile into the environment when it exists, then resolves
// every key from the environment over the defaults.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Store != StoreMemory && c.Store != StorePostgres {
		errs = append(errs, fmt.Errorf("STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	return errors.Join(errs...)
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return u.String()
}
