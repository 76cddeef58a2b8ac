package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"DRAWING_ROOT", "HTTP_TIMEOUT", "HTTP_RETRIES", "S3_ENDPOINT", "S3_ACCESS_KEY",
	"S3_SECRET_KEY", "S3_REGION", "S3_SECURE", "PUSHGATEWAY_URL", "LOG_LEVEL", "MAX_TEXTS",
}

// clearEnv blanks every SEATPLAN_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(EnvPrefix+k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seatplan.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, errs := Load("")
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if cfg.DrawingRoot != DefaultDrawingRoot {
		t.Errorf("DrawingRoot = %q, want %q", cfg.DrawingRoot, DefaultDrawingRoot)
	}
	if cfg.HTTPTimeout != DefaultHTTPTimeout || cfg.HTTPRetries != DefaultHTTPRetries {
		t.Errorf("unexpected HTTP settings %v/%d", cfg.HTTPTimeout, cfg.HTTPRetries)
	}
	if cfg.Flatten.MaxDepth != 50 || cfg.Flatten.MaxTexts != 500 {
		t.Errorf("unexpected flatten defaults %+v", cfg.Flatten)
	}
	if len(cfg.Flatten.ScaleRules) == 0 {
		t.Error("default scale rules should be present")
	}
	if cfg.HasObjectStore() {
		t.Error("object store should be off by default")
	}
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
drawing_root: /srv/drawings
http_timeout: 45s
http_retries: 5
log_level: debug
flatten:
  arc_segments: 32
  max_texts: -1
  scale_rules:
    - pattern: mannequin
      factor: 20
`)

	cfg, errs := Load(path)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if cfg.DrawingRoot != "/srv/drawings" {
		t.Errorf("DrawingRoot = %q", cfg.DrawingRoot)
	}
	if cfg.HTTPTimeout != 45*time.Second {
		t.Errorf("HTTPTimeout = %v, want 45s", cfg.HTTPTimeout)
	}
	if cfg.HTTPRetries != 5 {
		t.Errorf("HTTPRetries = %d, want 5", cfg.HTTPRetries)
	}
	if cfg.Flatten.ArcSegments != 32 || cfg.Flatten.MaxTexts != -1 {
		t.Errorf("unexpected flatten config %+v", cfg.Flatten)
	}
	// keys absent from the file keep their defaults
	if cfg.Flatten.MaxDepth != 50 {
		t.Errorf("MaxDepth = %d, want default 50", cfg.Flatten.MaxDepth)
	}
	if len(cfg.Flatten.ScaleRules) != 1 || cfg.Flatten.ScaleRules[0].Pattern != "mannequin" {
		t.Errorf("unexpected scale rules %+v", cfg.Flatten.ScaleRules)
	}

	opts := cfg.FlattenOptions(nil)
	if opts.ArcSegments != 32 || opts.ScaleRules[0].Factor != 20 {
		t.Errorf("FlattenOptions did not carry the file values: %+v", opts)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "drawing_root: /from/file\nhttp_retries: 2\n")
	t.Setenv("SEATPLAN_DRAWING_ROOT", "/from/env")
	t.Setenv("SEATPLAN_HTTP_TIMEOUT", "10")
	t.Setenv("SEATPLAN_S3_ENDPOINT", "minio.local:9000")
	t.Setenv("SEATPLAN_S3_ACCESS_KEY", "access-key-1234")
	t.Setenv("SEATPLAN_S3_SECRET_KEY", "secret-key-5678")
	t.Setenv("SEATPLAN_S3_SECURE", "yes")

	cfg, errs := Load(path)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if cfg.DrawingRoot != "/from/env" {
		t.Errorf("DrawingRoot = %q, want /from/env", cfg.DrawingRoot)
	}
	if cfg.HTTPRetries != 2 {
		t.Errorf("HTTPRetries = %d, want 2 from file", cfg.HTTPRetries)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("bare seconds should parse, got %v", cfg.HTTPTimeout)
	}
	if !cfg.HasObjectStore() {
		t.Fatal("object store should be configured")
	}
	store := cfg.ObjectStore()
	if store.Endpoint != "minio.local:9000" || !store.UseSSL {
		t.Errorf("unexpected object store config %+v", store)
	}
}

func TestLoad_CollectsErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEATPLAN_HTTP_RETRIES", "many")
	t.Setenv("SEATPLAN_HTTP_TIMEOUT", "soon")
	t.Setenv("SEATPLAN_LOG_LEVEL", "chatty")

	_, errs := Load("")
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], ErrInvalidDuration) {
		t.Errorf("first error should be ErrInvalidDuration, got %v", errs[0])
	}
	if !errors.Is(errs[1], ErrInvalidNumber) {
		t.Errorf("second error should be ErrInvalidNumber, got %v", errs[1])
	}
	if !errors.Is(errs[2], ErrInvalidLogLevel) {
		t.Errorf("third error should be ErrInvalidLogLevel, got %v", errs[2])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, errs := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg != nil {
		t.Error("expected nil config for unreadable file")
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, ErrInvalidTimeout},
		{"zero retries", func(c *Config) { c.HTTPRetries = 0 }, ErrInvalidRetries},
		{"keys without endpoint", func(c *Config) { c.S3AccessKey, c.S3SecretKey = "a", "b" }, ErrMissingS3Endpoint},
		{"endpoint without keys", func(c *Config) { c.S3Endpoint = "minio:9000" }, ErrMissingS3Keys},
		{"bad scale rule", func(c *Config) { c.Flatten.ScaleRules[0].Factor = 0 }, ErrInvalidScaleRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			if len(errs) != 1 || !errors.Is(errs[0], tt.want) {
				t.Fatalf("expected [%v], got %v", tt.want, errs)
			}
		})
	}

	if errs := Default().Validate(); len(errs) != 0 {
		t.Errorf("defaults should validate, got %v", errs)
	}
}

func TestLogSummaryMasksSecrets(t *testing.T) {
	cfg := Default()
	cfg.S3AccessKey = "AKIAEXAMPLEKEY"
	cfg.S3SecretKey = "short"

	s := cfg.LogSummary()
	if s["s3_access_key"] != "AKIA****" {
		t.Errorf("access key = %q", s["s3_access_key"])
	}
	if s["s3_secret_key"] != "****" {
		t.Errorf("secret key = %q", s["s3_secret_key"])
	}
	if s["s3_endpoint"] != "" || s["log_level"] != DefaultLogLevel {
		t.Errorf("unexpected summary %v", s)
	}
}
