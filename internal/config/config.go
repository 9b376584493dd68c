package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Server  Server  `yaml:"server" json:"server"`
	Storage Storage `yaml:"storage" json:"storage"`
	Seed    Seed    `yaml:"seed" json:"seed"`
}

type Server struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type Storage struct {
	// Backend is one of file, sqlite, or memory. The memory backend keeps
	// nothing across restarts.
	Backend string `yaml:"backend" json:"backend"`
	// Dir holds the snapshot file or the sqlite database.
	Dir string `yaml:"dir" json:"dir"`
}

type Seed struct {
	// Disabled skips writing sample tasks on a first run.
	Disabled bool `yaml:"disabled" json:"disabled"`
}

func Default() *Config {
	return &Config{
		Server:  Server{Host: "", Port: 8080},
		Storage: Storage{Backend: BackendFile, Dir: "data"},
	}
}

func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "data"
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	return nil
}

// Addr is the host:port the HTTP server binds.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Load reads a YAML config file. A missing file is not an error; the
// defaults (plus any environment overrides applied later) carry the app.
func Load(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.ApplyDefaults()
	return c, nil
}
