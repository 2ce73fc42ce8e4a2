package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, ModelSourceFile, cfg.Model.Source)
	assert.Equal(t, "mymodel.json", cfg.Model.Path)
	assert.False(t, cfg.Schema.Strict)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MODEL_SOURCE", "POSTGRES")
	t.Setenv("MODEL_NAME", "hv-2024")
	t.Setenv("SCHEMA_STRICT", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "12s")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/scoring")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ModelSourcePostgres, cfg.Model.Source)
	assert.Equal(t, "hv-2024", cfg.Model.Name)
	assert.True(t, cfg.Schema.Strict)
	assert.Equal(t, 12*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres://u:p@db:5432/scoring", cfg.GetPostgreSQLDSN())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("SCHEMA_STRICT", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.False(t, cfg.Schema.Strict)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "unknown source", mutate: func(c *Config) { c.Model.Source = "s3" }, wantErr: true},
		{name: "empty path", mutate: func(c *Config) { c.Model.Path = "" }, wantErr: true},
		{name: "postgres without name", mutate: func(c *Config) {
			c.Model.Source = ModelSourcePostgres
			c.Model.Name = ""
		}, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestGetPostgreSQLDSN_FromParts(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host: "db", Port: 5433, User: "svc", Password: "pw", Database: "scoring", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5433 user=svc password=pw dbname=scoring sslmode=disable", cfg.GetPostgreSQLDSN())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"GET", "POST"}, SplitList(" GET, ,POST "))
	assert.Nil(t, SplitList(""))
}
