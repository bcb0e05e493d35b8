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

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Cookie struct {
		Domain   string `yaml:"domain" env:"COOKIE_DOMAIN"`
		Secure   bool   `yaml:"secure" env:"COOKIE_SECURE"`
		SameSite string `yaml:"same_site" env:"COOKIE_SAME_SITE"`
	} `yaml:"cookie"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	RateLimit struct {
		Enabled bool `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
		Rate    int  `yaml:"rate" env:"RATE_LIMIT_RATE"`
		Burst   int  `yaml:"burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"rate_limit"`

	Notifications struct {
		Workers   int `yaml:"workers" env:"NOTIFICATION_WORKERS"`
		QueueSize int `yaml:"queue_size" env:"NOTIFICATION_QUEUE_SIZE"`
	} `yaml:"notifications"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional, ignore when absent
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "placemate"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.RefreshTokenExpiration = "168h"
	config.JWT.Issuer = "placemate.app"

	config.Cookie.SameSite = "lax"

	config.SMTP.Port = 587
	config.SMTP.FromName = "Placement Cell"
	config.SMTP.FromEmail = "noreply@placemate.app"

	config.Redis.Addr = "localhost:6379"

	config.RateLimit.Rate = 10
	config.RateLimit.Burst = 20

	config.Notifications.Workers = 4
	config.Notifications.QueueSize = 256

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.JWT.RefreshTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT refresh token expiration format: %w", err)
	}

	return nil
}

// GetPostgresConnectionString returns the postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AccessTokenDuration returns the parsed access token lifetime
func (c *Config) AccessTokenDuration() time.Duration {
	d, _ := time.ParseDuration(c.JWT.AccessTokenExpiration)
	return d
}

// RefreshTokenDuration returns the parsed refresh token lifetime
func (c *Config) RefreshTokenDuration() time.Duration {
	d, _ := time.ParseDuration(c.JWT.RefreshTokenExpiration)
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	valueLower := strings.ToLower(valueStr)
	if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
		return true
	}
	if valueLower == "false" || valueLower == "0" || valueLower == "no" {
		return false
	}

	return defaultValue
}
