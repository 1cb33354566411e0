package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	// CORSAllowedOrigins is a comma separated list of exact origins.
	CORSAllowedOrigins string        `mapstructure:"CORS_ALLOWED_ORIGINS" validate:"required"`
	CORSMaxAge         time.Duration `mapstructure:"CORS_MAX_AGE" validate:"gte=1s"`

	AuthJWTSecret string `mapstructure:"AUTH_JWT_SECRET" validate:"omitempty,min=16"`

	RejectEmptyBody bool  `mapstructure:"REJECT_EMPTY_BODY"`
	ErrorDetail     bool  `mapstructure:"ERROR_DETAIL"`
	MaxBodyBytes    int64 `mapstructure:"MAX_BODY_BYTES" validate:"gte=1"`

	GoMaxProcs int `mapstructure:"GOMAXPROCS" validate:"gte=0,lte=4096"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// AllowedOrigins splits CORSAllowedOrigins, dropping blank entries.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	// Defaults
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_MAX_AGE", "10m")
	v.SetDefault("REJECT_EMPTY_BODY", false)
	v.SetDefault("ERROR_DETAIL", false)
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("GOMAXPROCS", 0)

	// Optional config file
	_ = v.ReadInConfig()

	keys := []string{
		"APP_ENV",
		"HTTP_ADDR",
		"SHUTDOWN_TIMEOUT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"CORS_ALLOWED_ORIGINS",
		"CORS_MAX_AGE",
		"AUTH_JWT_SECRET",
		"REJECT_EMPTY_BODY",
		"ERROR_DETAIL",
		"MAX_BODY_BYTES",
		"GOMAXPROCS",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Parse duration types that may come as string
	for key, dst := range map[string]*time.Duration{
		"SHUTDOWN_TIMEOUT": &c.ShutdownTimeout,
		"CORS_MAX_AGE":     &c.CORSMaxAge,
	} {
		if s := v.GetString(key); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if len(c.AllowedOrigins()) == 0 {
		return nil, fmt.Errorf("invalid configuration: CORS_ALLOWED_ORIGINS has no usable entries")
	}

	if c.GoMaxProcs > 0 {
		runtime.GOMAXPROCS(c.GoMaxProcs)
	}

	return &c, nil
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}
