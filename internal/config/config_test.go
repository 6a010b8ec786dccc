package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
location = "Europe/Madrid"

[database]
host = "db"
password = "from-file"

[lock]
driver = "redis"
redis_addr = "redis:6379"

[policy]
reservation_lead_minutes = 30
`)
	t.Setenv("STUDIO_DB_PASSWORD", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, LockDriverRedis, cfg.Lock.Driver)
	assert.Equal(t, 30, cfg.Policy.ReservationLeadMinutes)
	assert.Equal(t, 120, cfg.Policy.CancellationLeadMinutes)
	assert.Equal(t, "Europe/Madrid", cfg.StudioLocation().String())
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "credit.refund", cfg.Broker.RefundQueue)
	assert.Equal(t, LockDriverMemory, cfg.Lock.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad port", "[server]\nhttp_port = 0\n"},
		{"unknown lock driver", "[lock]\ndriver = \"etcd\"\n"},
		{"client service without url", "[client_service]\nenabled = true\n"},
		{"negative lead", "[policy]\ncancellation_lead_minutes = -1\n"},
		{"unknown location", "[server]\nlocation = \"Mars/Olympus\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MalformedToml(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\n"))
	assert.Error(t, err)
}
