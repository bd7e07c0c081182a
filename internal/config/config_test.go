package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
jwt:
  secret: dev-secret
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 72*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 15*time.Second, cfg.Auth.Timeout)
	assert.Equal(t, 300*time.Second, cfg.Cache.LeaderboardTTL)
	assert.Equal(t, "identitytoolkit", cfg.Auth.Provider)
	assert.Equal(t, "builtin", cfg.Catalog.Source)
	assert.Equal(t, 256, cfg.Catalog.FilterCacheSize)
	assert.Equal(t, dir, cfg.ConfigDir)
}

func TestLoadConfig_ShippedFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs"))
	require.NoError(t, err)
	assert.Equal(t, "identitytoolkit", cfg.Auth.Provider)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 20, cfg.RateLimit.AuthMaxRequests)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Mode: "debug"},
			JWT:     JWTConfig{Secret: "short"},
			Auth:    AuthConfig{Provider: "local"},
			Catalog: CatalogConfig{Source: "builtin", FilterCacheSize: 16},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid debug", func(c *Config) {}, false},
		{"short secret in release", func(c *Config) { c.Server.Mode = "release" }, true},
		{"long secret in release", func(c *Config) {
			c.Server.Mode = "release"
			c.JWT.Secret = "0123456789abcdef0123456789abcdef"
		}, false},
		{"hosted provider without key in release", func(c *Config) {
			c.Server.Mode = "release"
			c.JWT.Secret = "0123456789abcdef0123456789abcdef"
			c.Auth.Provider = "identitytoolkit"
		}, true},
		{"unknown provider", func(c *Config) { c.Auth.Provider = "ldap" }, true},
		{"local source without path", func(c *Config) { c.Catalog.Source = "local" }, true},
		{"minio source with path", func(c *Config) {
			c.Catalog.Source = "minio"
			c.Catalog.Path = "catalog/seed.yaml"
		}, false},
		{"unknown source", func(c *Config) { c.Catalog.Source = "ftp" }, true},
		{"zero cache size", func(c *Config) { c.Catalog.FilterCacheSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
