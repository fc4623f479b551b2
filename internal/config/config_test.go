package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, DirectoryPostgres, cfg.Directory.Type)
	assert.Equal(t, 10*time.Second, cfg.Directory.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Report.ExportInterval)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.FrontendURL)
	assert.Equal(t, "./storage", cfg.Storage.BasePath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	assert.Equal(t, "postgres://postgres:@localhost:5432/pharmacy?sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FRONTEND_URL", "https://a.example, https://b.example")
	t.Setenv("DIRECTORY_TYPE", "HTTP")
	t.Setenv("DIRECTORY_URL", "http://backoffice.local")
	t.Setenv("DB_PASSWORD", "p@ss word")

	cfg, err := Load()
	require.NoError(t, err)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", loc.String())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.FrontendURL)
	assert.Equal(t, DirectoryHTTP, cfg.Directory.Type)
	assert.Contains(t, cfg.DatabaseURL(), "p%40ss%20word")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET_KEY is required"},
		{"http directory without url", map[string]string{"JWT_SECRET_KEY": "s", "DIRECTORY_TYPE": "http"}, "DIRECTORY_URL is required"},
		{"unknown directory", map[string]string{"JWT_SECRET_KEY": "s", "DIRECTORY_TYPE": "ldap"}, "unsupported DIRECTORY_TYPE"},
		{"bad port", map[string]string{"JWT_SECRET_KEY": "s", "APP_PORT": "http"}, "invalid APP_PORT"},
		{"bad interval", map[string]string{"JWT_SECRET_KEY": "s", "REPORT_EXPORT_INTERVAL": "daily"}, "invalid REPORT_EXPORT_INTERVAL"},
		{"bad timezone", map[string]string{"JWT_SECRET_KEY": "s", "APP_TIMEZONE": "Mars/Base"}, "invalid APP_TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("JWT_SECRET_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
