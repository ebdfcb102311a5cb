package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.env")
	for _, k := range []string{"APP_ADDR", "MONGO_URI", "MONGO_DB", "MAX_PAGE_LIMIT", "REQUEST_TIMEOUT", "JWT_SECRET", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(k, "")
	}

	env := LoadEnv()
	if env.AppAddr != ":5000" || env.MongoDB != "devcamper" || env.MaxPageLimit != 100 {
		t.Fatalf("unexpected defaults: %+v", env)
	}
	if env.RequestTimeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %s", env.RequestTimeout)
	}
	if env.JWTSecret != "" || env.RateLimitPerMinute != 0 {
		t.Fatalf("guards must be off by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.env")
	t.Setenv("MAX_PAGE_LIMIT", "50")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.test , ,https://b.test")
	t.Setenv("GEOCODER_RETRY_MAX", "oops")

	env := LoadEnv()
	if env.MaxPageLimit != 50 || env.RequestTimeout != 3*time.Second {
		t.Fatalf("overrides not applied: %+v", env)
	}
	if len(env.CORSAllowedOrigins) != 2 || env.CORSAllowedOrigins[1] != "https://b.test" {
		t.Fatalf("unexpected origins %v", env.CORSAllowedOrigins)
	}
	if env.GeocoderRetryMax != 0 {
		t.Fatalf("invalid int should fall back to default")
	}
}
