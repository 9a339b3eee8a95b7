// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. RESUME_MATCHER_SERVER_ADDR.
const EnvPrefix = "RESUME_MATCHER"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Log       LogConfig       `mapstructure:"log"`
	Feedback  FeedbackConfig  `mapstructure:"feedback"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb" validate:"min=1"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// StorageConfig selects where uploaded documents are kept.
type StorageConfig struct {
	Backend   string `mapstructure:"backend" validate:"oneof=none local s3"`
	Dir       string `mapstructure:"dir" validate:"required_if=Backend local"`
	Bucket    string `mapstructure:"bucket" validate:"required_if=Backend s3"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,url"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// RateLimitConfig configures the per-client token buckets.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit" validate:"min=1"`
	DefaultWindow   time.Duration `mapstructure:"default_window" validate:"gt=0"`
	AnalyzeLimit    int           `mapstructure:"analyze_limit" validate:"min=1"`
	AnalyzeWindow   time.Duration `mapstructure:"analyze_window" validate:"gt=0"`
	AnalyzeBurst    int           `mapstructure:"analyze_burst" validate:"min=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"gt=0"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// FetchConfig configures job posting retrieval by URL.
type FetchConfig struct {
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UseBrowser    bool          `mapstructure:"use_browser"`
	MinTextLength int           `mapstructure:"min_text_length" validate:"min=0"`
	// AllowURLIngest lets HTTP clients submit a job_url for the server to fetch.
	AllowURLIngest bool `mapstructure:"allow_url_ingest"`
	// AllowPrivateNetworks lets the server fetch loopback, private and link-local hosts.
	AllowPrivateNetworks bool `mapstructure:"allow_private_networks"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// FeedbackConfig holds settings for feedback messages.
type FeedbackConfig struct {
	// Organization is named in feedback messages; empty means a generic role.
	Organization string `mapstructure:"organization"`
}

// New returns a viper instance with defaults and environment binding applied.
// Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.dir", "uploads")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.prefix", "uploads/")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 1000)
	v.SetDefault("rate_limit.default_window", "1m")
	v.SetDefault("rate_limit.analyze_limit", 30)
	v.SetDefault("rate_limit.analyze_window", "1m")
	v.SetDefault("rate_limit.analyze_burst", 5)
	v.SetDefault("rate_limit.cleanup_interval", "5m")
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})

	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.use_browser", false)
	v.SetDefault("fetch.min_text_length", 200)
	v.SetDefault("fetch.allow_url_ingest", false)
	v.SetDefault("fetch.allow_private_networks", false)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("feedback.organization", "")
}

// Load reads an optional YAML config file into v, decodes it and validates the result.
// Values resolve in the order flags, environment, file, defaults.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins)
	cfg.RateLimit.Whitelist = splitList(cfg.RateLimit.Whitelist)
	cfg.RateLimit.Blacklist = splitList(cfg.RateLimit.Blacklist)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile is Load with a fresh viper instance.
func LoadFile(path string) (*Config, error) {
	return Load(New(), path)
}

// Default returns the configuration produced by defaults alone, ignoring the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := Load(v, "")
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

var validate = validator.New()

// Validate checks field constraints and returns a readable error naming each bad key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

// splitList flattens comma-separated entries that arrive as a single string from the
// environment.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
