package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEnvironmentVariables_Defaults(t *testing.T) {
	env, err := ProcessEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "localhost", env.PostgresAddress)
	assert.Equal(t, "5433", env.PostgresPort)
	assert.Equal(t, "disable", env.PostgresSSLMode)
	assert.Equal(t, BackendPostgres, env.DataBackend)
	assert.Equal(t, 4, env.OperatorWorkers)
	assert.True(t, env.RunMigrations)
}

func TestProcessEnvironmentVariables_Overrides(t *testing.T) {
	t.Setenv("POSTGRES_ADDRESS", "db.internal")
	t.Setenv("DATA_BACKEND", BackendMemory)
	t.Setenv("OPERATOR_WORKERS", "8")
	t.Setenv("RUN_MIGRATIONS", "false")

	env, err := ProcessEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", env.PostgresAddress)
	assert.Equal(t, BackendMemory, env.DataBackend)
	assert.Equal(t, 8, env.OperatorWorkers)
	assert.False(t, env.RunMigrations)
}

func TestProcessEnvironmentVariables_Invalid(t *testing.T) {
	t.Setenv("DATA_BACKEND", "mongodb")
	_, err := ProcessEnvironmentVariables()
	assert.Error(t, err)

	t.Setenv("DATA_BACKEND", BackendMemory)
	t.Setenv("OPERATOR_WORKERS", "0")
	_, err = ProcessEnvironmentVariables()
	assert.Error(t, err)
}
