package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "lumen/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	Contact   sharedConfig.ContactConfig   `mapstructure:"contact"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// A missing config file is not fatal: defaults plus LUMEN_* environment
// variables are enough to run, and optional features (SMTP delivery) report
// their unconfigured state instead of crashing.
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("LUMEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Database defaults (sqlite keeps local development dependency-free)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.database", "lumen.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.access_exp_minutes", 15)
	viper.SetDefault("auth.jwt.refresh_exp_days", 7)
	viper.SetDefault("auth.password.bcrypt_cost", 12)

	// Email defaults (empty host means delivery is disabled, not placeholder)
	viper.SetDefault("email.smtp_host", "")
	viper.SetDefault("email.smtp_port", 587)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.from_address", "")
	viper.SetDefault("email.from_name", "Lumen")

	// Contact form defaults: 3 submissions per identifier per minute
	viper.SetDefault("contact.recipient", "")
	viper.SetDefault("contact.max_requests", 3)
	viper.SetDefault("contact.window_seconds", 60)
	viper.SetDefault("contact.use_shared_limiter", false)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Per-IP rate limit defaults
	viper.SetDefault("ratelimit.ip_limit", 100)
	viper.SetDefault("ratelimit.ip_window_seconds", 60)
}
