package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8000", cfg.EndpointAddr)
	require.Equal(t, 60*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTokenValidityDuration)
	require.NotEmpty(t, cfg.DatabaseDSN)
}

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr": ":9000",
		"secret_key": "json-secret",
		"access_token_validity_minutes": 5,
		"google_client_id": "client-from-json"
	}`), 0o600))

	oldArgs := os.Args
	os.Args = []string{"server", "-c", path}
	t.Cleanup(func() { os.Args = oldArgs })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, ":9000", cfg.EndpointAddr)
	require.Equal(t, "json-secret", cfg.SecretKey)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, "client-from-json", cfg.GoogleClientID)
	// untouched fields keep their defaults
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTokenValidityDuration)
}

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"server", "-a", ":7000", "-t", "2", "-b", "photos"}
	t.Cleanup(func() { os.Args = oldArgs })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, ":7000", cfg.EndpointAddr)
	require.Equal(t, 2*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, "photos", cfg.S3Bucket)
}
