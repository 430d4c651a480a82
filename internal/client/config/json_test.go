package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv("TASKBOARD_CONFIG", "")

	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"server_endpoint_addr":  "www.example:9000",
		"online_check_interval": "10s",
		"local_db_path":         "/data/tb.db",
		"cache_size":            7,
	})
	partial := writeTempJSON(t, dir, "partial.json", map[string]any{
		"cache_size": 9,
	})

	t.Run("loads from flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", full}
		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, &Config{
			ServerEndpointAddr:  "www.example:9000",
			OnlineCheckInterval: 10 * time.Second,
			LocalDBPath:         "/data/tb.db",
			CacheSize:           7,
		}, cfg)
	})

	t.Run("absent keys keep values", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", partial}
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
		assert.Equal(t, 9, cfg.CacheSize)
	})

	t.Run("env fallback", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("TASKBOARD_CONFIG", full)
		cfg := &Config{}
		parseJson(cfg)
		assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
	})

	t.Run("no file leaves config untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}
		cfg := &Config{CacheSize: 3}
		parseJson(cfg)
		assert.Equal(t, &Config{CacheSize: 3}, cfg)
	})

	t.Run("malformed file panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
		os.Args = []string{"testbin", "-c", bad}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})
}
