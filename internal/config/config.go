package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		ENV string `yaml:"env"`
	} `yaml:"app"`

	Log struct {
		Level     string `yaml:"level"`
		Format    string `yaml:"format"`
		Component string `yaml:"component"`
		Source    bool   `yaml:"source"`
	} `yaml:"log"`

	DB struct {
		DSN      string `yaml:"dsn"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"db"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	GRPC struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"grpc"`

	HTTP struct {
		Host            string        `yaml:"host"`
		Port            string        `yaml:"port"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"http"`

	Auth struct {
		JWTSecret string        `yaml:"jwt_secret"`
		Issuer    string        `yaml:"issuer"`
		DevTTL    time.Duration `yaml:"dev_ttl"`
	} `yaml:"auth"`

	Realtime struct {
		SendBuffer     int           `yaml:"send_buffer"`
		WriteWait      time.Duration `yaml:"write_wait"`
		PongWait       time.Duration `yaml:"pong_wait"`
		MaxMessageSize int64         `yaml:"max_message_size"`
		EventsPerSec   float64       `yaml:"events_per_sec"`
		EventBurst     int           `yaml:"event_burst"`
		TypingTTL      time.Duration `yaml:"typing_ttl"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"realtime"`
}

// New builds the config from defaults, an optional YAML file (CONFIG_FILE)
// and environment variables, in that order of precedence (env wins).
// A .env file in the working directory is loaded first when present.
func New() *Config {
	_ = godotenv.Load()

	cfg := defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
		}
	}
	cfg.applyEnv()

	return cfg
}

func defaults() *Config {
	cfg := &Config{}

	cfg.App.ENV = "development"

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Log.Component = "muzz_match"

	cfg.DB.Host = "localhost"
	cfg.DB.Port = "3306"
	cfg.DB.User = "root"
	cfg.DB.Password = "root"
	cfg.DB.Name = "muzz"

	cfg.Redis.Addr = "localhost:6379"

	cfg.GRPC.Host = "127.0.0.1"
	cfg.GRPC.Port = "50051"

	cfg.HTTP.Host = "127.0.0.1"
	cfg.HTTP.Port = "8080"
	cfg.HTTP.ShutdownTimeout = 10 * time.Second

	cfg.Auth.JWTSecret = "dev-secret-change-me"
	cfg.Auth.Issuer = "muzz-auth"
	cfg.Auth.DevTTL = 24 * time.Hour

	cfg.Realtime.SendBuffer = 64
	cfg.Realtime.WriteWait = 10 * time.Second
	cfg.Realtime.PongWait = 60 * time.Second
	cfg.Realtime.MaxMessageSize = 16 << 10
	cfg.Realtime.EventsPerSec = 20
	cfg.Realtime.EventBurst = 40
	cfg.Realtime.TypingTTL = 30 * time.Second

	return cfg
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.App.ENV = getEnvDefault("APP_ENV", c.App.ENV)

	// Logger
	c.Log.Level = getEnvDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvDefault("LOG_FORMAT", c.Log.Format)
	c.Log.Component = getEnvDefault("LOG_COMPONENT", c.Log.Component)
	if v, ok := os.LookupEnv("LOG_SOURCE"); ok {
		c.Log.Source = isTruthy(v)
	}

	// Database
	c.DB.DSN = getEnvDefault("MYSQL_DSN", c.DB.DSN)
	if c.DB.DSN == "" {
		c.DB.Host = getEnvDefault("DB_HOST", c.DB.Host)
		c.DB.Port = getEnvDefault("DB_PORT", c.DB.Port)
		c.DB.User = getEnvDefault("DB_USER", c.DB.User)
		c.DB.Password = getEnvDefault("DB_PASSWORD", c.DB.Password)
		c.DB.Name = getEnvDefault("DB_NAME", c.DB.Name)

		c.DB.DSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name,
		)
	}

	// Redis
	c.Redis.Addr = getEnvDefault("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnvDefault("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)

	// gRPC
	c.GRPC.Host = getEnvDefault("GRPC_HOST", c.GRPC.Host)
	c.GRPC.Port = getEnvDefault("GRPC_PORT", c.GRPC.Port)

	// HTTP (websocket + metrics)
	c.HTTP.Host = getEnvDefault("HTTP_HOST", c.HTTP.Host)
	c.HTTP.Port = getEnvDefault("HTTP_PORT", c.HTTP.Port)
	c.HTTP.ShutdownTimeout = getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)

	// Auth
	c.Auth.JWTSecret = getEnvDefault("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.Issuer = getEnvDefault("JWT_ISSUER", c.Auth.Issuer)
	c.Auth.DevTTL = getEnvDuration("JWT_DEV_TTL", c.Auth.DevTTL)

	// Realtime
	c.Realtime.SendBuffer = getEnvInt("WS_SEND_BUFFER", c.Realtime.SendBuffer)
	c.Realtime.WriteWait = getEnvDuration("WS_WRITE_WAIT", c.Realtime.WriteWait)
	c.Realtime.PongWait = getEnvDuration("WS_PONG_WAIT", c.Realtime.PongWait)
	c.Realtime.TypingTTL = getEnvDuration("WS_TYPING_TTL", c.Realtime.TypingTTL)
	if v := getEnvDefault("WS_ALLOWED_ORIGINS", ""); v != "" {
		c.Realtime.AllowedOrigins = splitList(v)
	}
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if n, err := strconv.Atoi(getEnvDefault(k, "")); err == nil {
		return n
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnvDefault(k, "")); err == nil && d > 0 {
		return d
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
