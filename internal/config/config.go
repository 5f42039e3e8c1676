package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Log     LogConfig
	Feed    FeedConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	Mode            string
	AllowedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// RedisConfig holds the newest-members cache configuration
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
	Issuer    string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level     string
	Format    string
	Component string
}

// FeedConfig tunes the featured members feed
type FeedConfig struct {
	PageSize        int
	MinPersonalized int
	NewestLimit     int
}

// Load loads configuration from a config file in path (optional) and environment variables.
// Environment keys use underscores, e.g. MONGODB_URI or JWT_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings the server cannot start without
func (c *Config) Validate() error {
	if c.MongoDB.URI == "" {
		return errors.New("config: MONGODB_URI is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.Feed.PageSize <= 0 {
		return errors.New("config: FEED_PAGESIZE must be positive")
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "5000")
	v.SetDefault("Server.Mode", "release")
	v.SetDefault("Server.AllowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("Server.ReadTimeout", 15*time.Second)
	v.SetDefault("Server.WriteTimeout", 15*time.Second)
	v.SetDefault("Server.ShutdownTimeout", 5*time.Second)

	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "spiritual-purity")
	v.SetDefault("MongoDB.Timeout", 10*time.Second)

	v.SetDefault("Redis.Enabled", false)
	v.SetDefault("Redis.Addr", "localhost:6379")
	v.SetDefault("Redis.Password", "")
	v.SetDefault("Redis.DB", 0)
	v.SetDefault("Redis.TTL", 5*time.Minute)

	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 7*24*time.Hour)
	v.SetDefault("JWT.Issuer", "spiritual-purity")

	v.SetDefault("Log.Level", "info")
	v.SetDefault("Log.Format", "text")
	v.SetDefault("Log.Component", "api")

	v.SetDefault("Feed.PageSize", 6)
	v.SetDefault("Feed.MinPersonalized", 4)
	v.SetDefault("Feed.NewestLimit", 8)
}
