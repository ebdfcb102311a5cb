package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	AppEnv  string
	GinMode string

	MongoURI string
	MongoDB  string

	GeocoderAPIKey   string
	GeocoderBaseURL  string
	GeocoderRetryMax int

	MaxPageLimit   int
	RequestTimeout time.Duration

	CORSAllowedOrigins []string
	JWTSecret          string

	RateLimitPerMinute int
	RateLimitBurst     int
}

// IsDevelopment reports whether the process runs with developer-friendly output.
func (e Env) IsDevelopment() bool {
	return e.AppEnv == "development"
}

// LoadEnv reads the dotenv file named by CONFIG_FILE (default config/config.env)
// when it exists, then resolves every setting from the process environment.
// Variables already set in the environment win over the file.
func LoadEnv() Env {
	file := envString("CONFIG_FILE", "config/config.env")
	if _, err := os.Stat(file); err == nil {
		_ = godotenv.Load(file)
	}

	return Env{
		AppAddr: envString("APP_ADDR", ":5000"),
		AppEnv:  envString("APP_ENV", "development"),
		GinMode: envString("GIN_MODE", ""),

		MongoURI: envString("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:  envString("MONGO_DB", "devcamper"),

		GeocoderAPIKey:   envString("GEOCODER_API_KEY", ""),
		GeocoderBaseURL:  envString("GEOCODER_BASE_URL", "https://www.mapquestapi.com/geocoding/v1/address"),
		GeocoderRetryMax: envInt("GEOCODER_RETRY_MAX", 0),

		MaxPageLimit:   envInt("MAX_PAGE_LIMIT", 100),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 15*time.Second),

		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}),
		JWTSecret: envString("JWT_SECRET", ""),

		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 0),
		RateLimitBurst:     envInt("RATE_LIMIT_BURST", 20),
	}
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
