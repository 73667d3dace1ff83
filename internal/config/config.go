package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// InsecureDefaultSecret is the fallback hashing salt used when no secret is
// configured. Deployments must set GUARD_HASH_SECRET; running with this value
// makes visitor hashes guessable and is logged loudly at startup.
const InsecureDefaultSecret = "microhub-insecure-default-salt"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Guard     GuardConfig     `yaml:"guard"`
	Tracking  TrackingConfig  `yaml:"tracking"`
	Retention RetentionConfig `yaml:"retention"`
	Admin     AdminConfig     `yaml:"admin"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type GuardConfig struct {
	// Disabled turns the whole guard pipeline off. Zero value keeps it on.
	Disabled             bool     `yaml:"disabled"`
	HashSecret           string   `yaml:"hash_secret"`
	RateLimit            int      `yaml:"rate_limit"`
	RateWindowSeconds    int      `yaml:"rate_window_seconds"`
	HoneypotBlockMinutes int      `yaml:"honeypot_block_minutes"`
	BypassPrefixes       []string `yaml:"bypass_prefixes"`
}

type TrackingConfig struct {
	SessionCookieName  string `yaml:"session_cookie_name"`
	SessionTTLMinutes  int    `yaml:"session_ttl_minutes"`
	MaxDurationSeconds int    `yaml:"max_duration_seconds"`
}

type RetentionConfig struct {
	Days int `yaml:"days"`
}

type AdminConfig struct {
	Token string `yaml:"token"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	// YAML file first, then env overrides, then defaults.
	if data, err := os.ReadFile("configs/config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.overrideFromEnv()
	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	// Database
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.Database.URL = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Database.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.DBName = val
	}

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}
	if val := os.Getenv("REDIS_DB"); val != "" {
		if db, err := strconv.Atoi(val); err == nil {
			c.Redis.DB = db
		}
	}

	// Guard
	if val := os.Getenv("GUARD_HASH_SECRET"); val != "" {
		c.Guard.HashSecret = val
	}
	if val := os.Getenv("GUARD_RATE_LIMIT"); val != "" {
		if limit, err := strconv.Atoi(val); err == nil {
			c.Guard.RateLimit = limit
		}
	}
	if val := os.Getenv("GUARD_DISABLED"); val != "" {
		c.Guard.Disabled = val == "1" || strings.EqualFold(val, "true")
	}

	// Admin
	if val := os.Getenv("ADMIN_TOKEN"); val != "" {
		c.Admin.Token = val
	}

	// Server
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Server.Port = port
		}
	}
	if val := os.Getenv("GIN_MODE"); val != "" {
		c.Server.Mode = val
	}
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}

	if c.Guard.HashSecret == "" {
		c.Guard.HashSecret = InsecureDefaultSecret
	}
	if c.Guard.RateLimit == 0 {
		c.Guard.RateLimit = 60
	}
	if c.Guard.RateWindowSeconds == 0 {
		c.Guard.RateWindowSeconds = 60
	}
	if c.Guard.HoneypotBlockMinutes == 0 {
		c.Guard.HoneypotBlockMinutes = 60
	}
	if len(c.Guard.BypassPrefixes) == 0 {
		c.Guard.BypassPrefixes = []string{"/health", "/api/admin"}
	}

	if c.Tracking.SessionCookieName == "" {
		c.Tracking.SessionCookieName = "mh_session"
	}
	if c.Tracking.SessionTTLMinutes == 0 {
		c.Tracking.SessionTTLMinutes = 30
	}
	if c.Tracking.MaxDurationSeconds == 0 {
		c.Tracking.MaxDurationSeconds = 1800
	}

	if c.Retention.Days == 0 {
		c.Retention.Days = 90
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "./logs/app.log"
	}
}

// HasInsecureSecret reports whether the guard is still running on the
// hardcoded fallback salt.
func (c *Config) HasInsecureSecret() bool {
	return c.Guard.HashSecret == InsecureDefaultSecret
}

func (c *Config) GetDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.DBName, c.Database.SSLMode)
}
