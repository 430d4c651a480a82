package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the taskboard CLI.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	// LocalDBPath is the SQLite file holding the saved session.
	LocalDBPath string
	// CacheSize bounds the number of cached queries.
	CacheSize int
}

func defaultLocalDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "taskboard.db"
	}
	return filepath.Join(dir, "taskboard", "taskboard.db")
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.LocalDBPath = defaultLocalDBPath()
	c.CacheSize = 128
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
