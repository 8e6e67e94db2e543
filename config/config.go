package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the server reads from the environment.
// Values come from real env vars or a .env file loaded in main.
type Config struct {
	ServerPort     string
	MongoURI       string
	MongoDatabase  string
	AllowedOrigins []string

	AdminUsername     string
	AdminPassword     string // plaintext fallback, hashed at startup
	AdminPasswordHash string // bcrypt hash, takes precedence when set

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, applying defaults for
// everything that is safe to default. Required values (JWT secret, admin
// credentials) are validated by the caller so it can decide how to fail.
func Load() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		MongoURI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGODB_DATABASE", "gmb"),
		AllowedOrigins:    splitCSV(os.Getenv("ALLOWED_ORIGINS")),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getDuration("TOKEN_TTL", 24*time.Hour),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go duration strings ("24h", "30m") and, for
// convenience, bare integers treated as hours.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if h, err := strconv.Atoi(v); err == nil {
		return time.Duration(h) * time.Hour
	}
	return fallback
}

func splitCSV(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
