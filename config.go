package questdbconnect

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the connection defaults.
const (
	EnvHost     = "QUESTDB_CONNECT_HOST"
	EnvPort     = "QUESTDB_CONNECT_PORT"
	EnvUser     = "QUESTDB_CONNECT_USER"
	EnvPassword = "QUESTDB_CONNECT_PASSWORD"
	EnvDatabase = "QUESTDB_CONNECT_DATABASE"
)

// Connection defaults for a stock QuestDB install.
const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 8812
	DefaultUser     = "admin"
	DefaultPassword = "quest"
	DefaultDatabase = "main"
)

// Config holds the parameters needed to reach a QuestDB server over its
// PostgreSQL wire protocol endpoint.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// DefaultConfig returns a Config populated with the stock QuestDB defaults.
func DefaultConfig() Config {
	return Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		User:     DefaultUser,
		Password: DefaultPassword,
		Database: DefaultDatabase,
	}
}

// FromEnv returns a Config built from the QUESTDB_CONNECT_* environment
// variables, falling back to the defaults for any variable that is unset.
func FromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv(EnvUser); v != "" {
		cfg.User = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	return cfg
}

// LoadConfig reads a YAML config file and returns the resulting Config.
// Fields missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("questdb: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("questdb: parse config: %w", err)
	}
	return cfg, nil
}

// normalized returns a copy of the config with zero-value fields replaced
// by the connection defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Host == "" {
		c.Host = d.Host
	}
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.User == "" {
		c.User = d.User
	}
	if c.Password == "" {
		c.Password = d.Password
	}
	if c.Database == "" {
		c.Database = d.Database
	}
	return c
}

// DSN returns the connection string understood by the lib/pq driver.
// QuestDB's wire endpoint speaks plain protocol, so TLS is disabled.
func (c Config) DSN() string {
	c = c.normalized()
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// URI returns the questdb:// connection URI for this config.
func (c Config) URI() string {
	c = c.normalized()
	return ConnectionURI(c.Host, c.Port, c.User, c.Password, c.Database)
}

// ConnectionURI formats a questdb:// URI from individual parameters.
func ConnectionURI(host string, port int, user, password, database string) string {
	return fmt.Sprintf("questdb://%s:%s@%s:%d/%s", user, password, host, port, database)
}
