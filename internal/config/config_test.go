package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 60*time.Second, cfg.HTTP.RequestTimeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "file:users.db", cfg.Database.EffectiveDSN())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "user-management-api", cfg.Kafka.GroupID)
	assert.False(t, cfg.Observability.Enabled)
	assert.Equal(t, "user-management-api", cfg.Observability.ServiceName)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_DSN", "postgres://app:secret@db:5432/users?sslmode=disable")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_TTL", "30s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_EnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("APP_ENV=Staging\nHTTP_HOST=127.0.0.1\n"), 0o600))
	t.Setenv("HTTP_HOST", "10.0.0.1")
	// registered for restore, then cleared so the file can provide it
	t.Setenv("APP_ENV", "")
	require.NoError(t, os.Unsetenv("APP_ENV"))

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1", cfg.HTTP.Host, "process environment wins over the file")
	assert.Equal(t, "Staging", cfg.Environment)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"port out of range":     {"HTTP_PORT", "70000"},
		"unknown log level":     {"LOG_LEVEL", "verbose"},
		"kafka without brokers": {"KAFKA_ENABLED", "true"},
		"non-numeric port":      {"HTTP_PORT", "eighty"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_EffectiveDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "app",
		Password: "p@ss",
		DBName:   "users",
		SSLMode:  "require",
	}

	assert.Equal(t, "postgres://app:p%40ss@db:5433/users?sslmode=require", cfg.EffectiveDSN())
	assert.Equal(t, DriverPostgres, cfg.Driver())

	cfg.DSN = "file:/var/lib/users.db"
	assert.Equal(t, "file:/var/lib/users.db", cfg.EffectiveDSN())
	assert.Equal(t, DriverSQLite, cfg.Driver())

	assert.Equal(t, DriverPostgres, DatabaseConfig{DSN: "postgresql://localhost/users"}.Driver())
}
