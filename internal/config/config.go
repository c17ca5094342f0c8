package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"projectmanager/internal/logger"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	AppPort     string
	AppVersion  string
	Storage     string
	DatabaseURL string
	DBMaxConns  int32

	JWTSecret     string
	JWTExpiration time.Duration
	BcryptCost    int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// Origins allowed by CORS. An entry ending in "*" matches by prefix.
	CORSAllowedOrigins []string

	LogLevel string
	LogJSON  bool
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// Parse reads the configuration from the process environment.
func Parse() (*Config, error) {
	storage := strings.ToLower(getenv("STORAGE", StoragePostgres))
	if storage != StoragePostgres && storage != StorageMemory {
		return nil, fmt.Errorf("STORAGE must be %q or %q", StoragePostgres, StorageMemory)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if storage == StoragePostgres && dbURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if len(strings.TrimSpace(jwtSecret)) < 32 {
		return nil, errors.New("JWT_SECRET must be at least 32 characters")
	}

	jwtExpiration := 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("JWT_EXPIRATION: invalid duration %q", v)
		}
		jwtExpiration = d
	}

	origins := []string{"http://localhost:*"}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		AppPort:            getenv("APP_PORT", "8080"),
		AppVersion:         getenv("APP_VERSION", "dev"),
		Storage:            storage,
		DatabaseURL:        dbURL,
		DBMaxConns:         int32(positiveInt("DB_MAX_CONNS", 0)),
		JWTSecret:          jwtSecret,
		JWTExpiration:      jwtExpiration,
		BcryptCost:         positiveInt("BCRYPT_COST", 10),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            positiveInt("REDIS_DB", 0),
		APIRateLimit:       positiveInt("API_RATE_LIMIT", 120),
		APIRateWindow:      time.Duration(positiveInt("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		AuthRateLimit:      positiveInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:     time.Duration(positiveInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,
		CORSAllowedOrigins: origins,
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogJSON:            os.Getenv("LOG_JSON") == "true",
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// positiveInt keeps def unless the variable holds a positive integer.
func positiveInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
