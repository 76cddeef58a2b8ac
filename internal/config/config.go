// Package config loads the runtime configuration of the seatplan tool.
// Values come from an optional YAML file and SEATPLAN_* environment
// variables, with the environment taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/piwi3910/SeatPlan/internal/flatten"
	"github.com/piwi3910/SeatPlan/internal/source"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SEATPLAN_"

// Config holds the runtime settings.
type Config struct {
	// Drawing sources
	DrawingRoot string        `koanf:"drawing_root"`
	HTTPTimeout time.Duration `koanf:"http_timeout"`
	HTTPRetries int           `koanf:"http_retries"`

	// S3-compatible object store, optional
	S3Endpoint  string `koanf:"s3_endpoint"`
	S3AccessKey string `koanf:"s3_access_key"`
	S3SecretKey string `koanf:"s3_secret_key"`
	S3Region    string `koanf:"s3_region"`
	S3Secure    bool   `koanf:"s3_secure"`

	// Prometheus Pushgateway for batch run metrics, optional
	PushgatewayURL string `koanf:"pushgateway_url"`

	LogLevel string `koanf:"log_level"`

	Flatten FlattenConfig `koanf:"flatten"`
}

// FlattenConfig mirrors flatten.Options for the file and environment.
type FlattenConfig struct {
	ArcSegments     int                 `koanf:"arc_segments"`
	CircleSegments  int                 `koanf:"circle_segments"`
	MaxTexts        int                 `koanf:"max_texts"`
	MaxDepth        int                 `koanf:"max_depth"`
	PlaceholderSize float64             `koanf:"placeholder_size"`
	RayLength       float64             `koanf:"ray_length"`
	ScaleRules      []flatten.ScaleRule `koanf:"scale_rules"`
}

// Configuration validation errors.
var (
	ErrInvalidNumber     = errors.New("value must be a valid number")
	ErrInvalidDuration   = errors.New("value must be a valid duration")
	ErrInvalidLogLevel   = errors.New("LOG_LEVEL must be one of debug, info, warn, error")
	ErrInvalidTimeout    = errors.New("HTTP_TIMEOUT must be positive")
	ErrInvalidRetries    = errors.New("HTTP_RETRIES must be at least 1")
	ErrMissingS3Endpoint = errors.New("S3_ENDPOINT is required when S3 credentials are set")
	ErrMissingS3Keys     = errors.New("S3_ACCESS_KEY and S3_SECRET_KEY are required with S3_ENDPOINT")
	ErrInvalidScaleRule  = errors.New("flatten scale rules need a pattern and a positive factor")
)

// Default values.
const (
	DefaultDrawingRoot = "."
	DefaultHTTPTimeout = source.DefaultHTTPTimeout
	DefaultHTTPRetries = source.DefaultHTTPAttempts
	DefaultLogLevel    = "info"
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	o := flatten.DefaultOptions()
	return &Config{
		DrawingRoot: DefaultDrawingRoot,
		HTTPTimeout: DefaultHTTPTimeout,
		HTTPRetries: DefaultHTTPRetries,
		LogLevel:    DefaultLogLevel,
		Flatten: FlattenConfig{
			ArcSegments:     o.ArcSegments,
			CircleSegments:  o.CircleSegments,
			MaxTexts:        o.MaxTexts,
			MaxDepth:        o.MaxDepth,
			PlaceholderSize: o.PlaceholderSize,
			RayLength:       o.RayLength,
			ScaleRules:      o.ScaleRules,
		},
	}
}

// Load reads configuration from an optional YAML file and the environment.
// It returns the config and every validation problem found. A file that
// cannot be read is reported alone with a nil config.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var errs []error

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, []error{fmt.Errorf("decode config file %s: %w", configFilePath, err)}
	}

	cfg.DrawingRoot = envString("DRAWING_ROOT", cfg.DrawingRoot)
	cfg.S3Endpoint = envString("S3_ENDPOINT", cfg.S3Endpoint)
	cfg.S3AccessKey = envString("S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = envString("S3_SECRET_KEY", cfg.S3SecretKey)
	cfg.S3Region = envString("S3_REGION", cfg.S3Region)
	cfg.PushgatewayURL = envString("PUSHGATEWAY_URL", cfg.PushgatewayURL)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.HTTPTimeout, err = envDuration("HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.HTTPRetries, err = envInt("HTTP_RETRIES", cfg.HTTPRetries); err != nil {
		errs = append(errs, err)
	}
	if cfg.Flatten.MaxTexts, err = envInt("MAX_TEXTS", cfg.Flatten.MaxTexts); err != nil {
		errs = append(errs, err)
	}
	cfg.S3Secure = envBool("S3_SECURE", cfg.S3Secure)

	return cfg, append(errs, cfg.Validate()...)
}

func envString(key, fallback string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	val := os.Getenv(EnvPrefix + key)
	if val == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return fallback, fmt.Errorf("%s%s=%q: %w", EnvPrefix, key, val, ErrInvalidNumber)
	}
	return i, nil
}

// envDuration accepts Go durations ("45s") and bare seconds ("45").
func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(EnvPrefix + key)
	if val == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback, fmt.Errorf("%s%s=%q: %w", EnvPrefix, key, val, ErrInvalidDuration)
	}
	return d, nil
}

func envBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(EnvPrefix + key)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return fallback
}

// Validate checks value ranges and returns every problem found.
func (c *Config) Validate() []error {
	var errs []error

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%q: %w", c.LogLevel, ErrInvalidLogLevel))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}
	if c.HTTPRetries < 1 {
		errs = append(errs, ErrInvalidRetries)
	}

	// S3 is optional. Only check it when something is set.
	if c.S3AccessKey != "" || c.S3SecretKey != "" {
		if c.S3Endpoint == "" {
			errs = append(errs, ErrMissingS3Endpoint)
		}
	}
	if c.S3Endpoint != "" && (c.S3AccessKey == "" || c.S3SecretKey == "") {
		errs = append(errs, ErrMissingS3Keys)
	}

	for _, r := range c.Flatten.ScaleRules {
		if r.Pattern == "" || r.Factor <= 0 {
			errs = append(errs, fmt.Errorf("%+v: %w", r, ErrInvalidScaleRule))
		}
	}

	return errs
}

// HasObjectStore reports whether s3:// drawing ids can be served.
func (c *Config) HasObjectStore() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// ObjectStore returns the object store connection settings.
func (c *Config) ObjectStore() source.ObjectStoreConfig {
	return source.ObjectStoreConfig{
		Endpoint:        c.S3Endpoint,
		AccessKeyID:     c.S3AccessKey,
		SecretAccessKey: c.S3SecretKey,
		Region:          c.S3Region,
		UseSSL:          c.S3Secure,
	}
}

// FlattenOptions converts the flatten settings, attaching logger.
func (c *Config) FlattenOptions(logger *log.Logger) flatten.Options {
	return flatten.Options{
		ArcSegments:     c.Flatten.ArcSegments,
		CircleSegments:  c.Flatten.CircleSegments,
		MaxTexts:        c.Flatten.MaxTexts,
		MaxDepth:        c.Flatten.MaxDepth,
		PlaceholderSize: c.Flatten.PlaceholderSize,
		RayLength:       c.Flatten.RayLength,
		ScaleRules:      c.Flatten.ScaleRules,
		Logger:          logger,
	}
}

// LogSummary returns the settings for logging with secrets masked.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"drawing_root":    c.DrawingRoot,
		"http_timeout":    c.HTTPTimeout.String(),
		"http_retries":    strconv.Itoa(c.HTTPRetries),
		"s3_endpoint":     c.S3Endpoint,
		"s3_access_key":   maskSecret(c.S3AccessKey),
		"s3_secret_key":   maskSecret(c.S3SecretKey),
		"s3_secure":       strconv.FormatBool(c.S3Secure),
		"pushgateway_url": c.PushgatewayURL,
		"log_level":       c.LogLevel,
	}
}

// maskSecret shows the first 4 characters of long secrets only.
func maskSecret(s string) string {
	if s == "" {
		return "<not set>"
	}
	if len(s) < 8 {
		return "****"
	}
	return s[:4] + "****"
}
