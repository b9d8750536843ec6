package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

type HTTPConfig struct {
	Host           string        `env:"HOST" envDefault:"0.0.0.0"`
	Port           int           `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s" validate:"gt=0"`
}

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:users.db"
)

type DatabaseConfig struct {
	// Either DSN directly (postgres://... or a SQLite file/URI),
	// or Postgres components to build it if DSN is empty.
	// With neither set the local file users.db is used.
	DSN      string `env:"DSN"`
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	DBName   string `env:"NAME"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`

	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`
	Debug       bool `env:"DEBUG" envDefault:"false"`
}

// Driver reports which database/sql driver serves EffectiveDSN.
func (c DatabaseConfig) Driver() string {
	dsn := c.EffectiveDSN()
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

func (c DatabaseConfig) EffectiveDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Host == "" {
		return defaultSQLiteDSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Enabled  bool          `env:"ENABLED" envDefault:"false"`
	Addr     string        `env:"ADDR" envDefault:"localhost:6379" validate:"required_if=Enabled true"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0" validate:"min=0"`
	TTL      time.Duration `env:"TTL" envDefault:"5m"`
}

type KafkaConfig struct {
	Enabled     bool     `env:"ENABLED" envDefault:"false"`
	Brokers     []string `env:"BROKERS" envSeparator:"," validate:"required_if=Enabled true"`
	ClientID    string   `env:"CLIENT_ID" envDefault:"user-management-api"`
	// Shared by every instance, so each event is consumed once per deployment.
	GroupID     string   `env:"GROUP_ID" envDefault:"user-management-api"`
	TopicPrefix string   `env:"TOPIC_PREFIX"`
}

// ObservabilityConfig Observability / telemetry configuration
type ObservabilityConfig struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"user-management-api" validate:"required"`
	ServiceEnv  string `env:"SERVICE_ENV" envDefault:"Development"`
	// e.g. "otel-collector:4317"
	OtelEndpoint string `env:"ENDPOINT"`
}

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"Development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	HTTP          HTTPConfig          `envPrefix:"HTTP_"`
	Database      DatabaseConfig      `envPrefix:"DB_"`
	Redis         RedisConfig         `envPrefix:"REDIS_"`
	Kafka         KafkaConfig         `envPrefix:"KAFKA_"`
	Observability ObservabilityConfig `envPrefix:"OTEL_"`
}
