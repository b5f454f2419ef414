package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Game      GameConfig      `yaml:"game"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	PathPrefix     string `yaml:"path_prefix"`
	RequestTimeout string `yaml:"request_timeout"`
	MaxBodyBytes   int64  `yaml:"max_body_bytes"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ClientConfig is a simulation or UI client allowed to request tokens.
// SecretHash is a bcrypt hash of the client secret.
type ClientConfig struct {
	ID         string `yaml:"id"`
	SecretHash string `yaml:"secret_hash"`
}

type AuthConfig struct {
	Enabled       bool           `yaml:"enabled"`
	JWTSecret     string         `yaml:"jwt_secret"`
	Issuer        string         `yaml:"issuer"`
	TokenDuration string         `yaml:"token_duration"`
	Clients       []ClientConfig `yaml:"clients"`
}

// GameConfig holds the rules of the simulation.
type GameConfig struct {
	GridSize     int     `yaml:"grid_size"`
	MissionRange float64 `yaml:"mission_range"`
	AgentSpeed   float64 `yaml:"agent_speed"`
}

type RateLimitConfig struct {
	LoginRequests int    `yaml:"login_requests"`
	Window        string `yaml:"window"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

func (c *AuthConfig) GetTokenDuration() time.Duration {
	d, err := time.ParseDuration(c.TokenDuration)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func (c *ServerConfig) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

func (c *RateLimitConfig) GetWindow() time.Duration {
	d, err := time.ParseDuration(c.Window)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// Load reads the YAML file at path and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	setDefaults(&cfg)

	return &cfg, nil
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout == "" {
		cfg.Server.RequestTimeout = "10s"
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/agents.db"
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "agents-rest"
	}
	if cfg.Auth.TokenDuration == "" {
		cfg.Auth.TokenDuration = "24h"
	}
	if cfg.Game.GridSize == 0 {
		cfg.Game.GridSize = 1000
	}
	if cfg.Game.MissionRange == 0 {
		cfg.Game.MissionRange = 200
	}
	if cfg.Game.AgentSpeed == 0 {
		cfg.Game.AgentSpeed = 5
	}
	if cfg.RateLimit.LoginRequests == 0 {
		cfg.RateLimit.LoginRequests = 10
	}
	if cfg.RateLimit.Window == "" {
		cfg.RateLimit.Window = "1m"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
