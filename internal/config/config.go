package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	PostgresSSLMode  string

	DataBackend     string
	HTTPPort        string
	OperatorWorkers int
	LogLevel        string
	RunMigrations   bool
}

func ProcessEnvironmentVariables() (*Config, error) {
	v := viper.New()

	// In all cases the default behavior should be for the docker compose setup
	v.SetDefault("POSTGRES_ADDRESS", "localhost")
	v.SetDefault("POSTGRES_PORT", "5433")
	v.SetDefault("POSTGRES_DB", "postgres")
	v.SetDefault("POSTGRES_USERNAME", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "testpassword")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("DATA_BACKEND", BackendPostgres)
	v.SetDefault("HTTP_PORT", "9446")
	v.SetDefault("OPERATOR_WORKERS", 4)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.AutomaticEnv()

	env := Config{
		PostgresAddress:  v.GetString("POSTGRES_ADDRESS"),
		PostgresPort:     v.GetString("POSTGRES_PORT"),
		PostgresDB:       v.GetString("POSTGRES_DB"),
		PostgresUsername: v.GetString("POSTGRES_USERNAME"),
		PostgresPassword: v.GetString("POSTGRES_PASSWORD"),
		PostgresSSLMode:  v.GetString("POSTGRES_SSLMODE"),
		DataBackend:      v.GetString("DATA_BACKEND"),
		HTTPPort:         v.GetString("HTTP_PORT"),
		OperatorWorkers:  v.GetInt("OPERATOR_WORKERS"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		RunMigrations:    v.GetBool("RUN_MIGRATIONS"),
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Config) Validate() error {
	switch c.DataBackend {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("DATA_BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, c.DataBackend)
	}
	if c.OperatorWorkers < 1 {
		return fmt.Errorf("OPERATOR_WORKERS must be at least 1, got %d", c.OperatorWorkers)
	}
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT must not be empty")
	}
	return nil
}
