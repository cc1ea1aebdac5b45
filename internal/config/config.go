package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinBcryptCost is the lowest accepted bcrypt cost factor.
const MinBcryptCost = 10

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	LogLevel   string

	DBDriver    string
	DatabaseDSN string
	ResetDB     bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	UnsplashKey     string
	UnsplashBaseURL string

	OpenWeatherKey     string
	OpenWeatherBaseURL string

	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusBaseURL      string

	UpstreamTimeout time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	CORSOrigins []string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// Values from a .env file in the working directory are loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "5000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DatabaseDSN: getEnv("DATABASE_DSN", "tripcraft.sqlite"),
		ResetDB:     os.Getenv("RESET_DB") == "true",

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		TokenTTL:   getEnvDuration("TOKEN_TTL", 24*time.Hour),
		BcryptCost: getEnvInt("BCRYPT_COST", MinBcryptCost),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4"),

		UnsplashKey:     os.Getenv("UNSPLASH_ACCESS_KEY"),
		UnsplashBaseURL: getEnv("UNSPLASH_BASE_URL", "https://api.unsplash.com"),

		OpenWeatherKey:     os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),

		AmadeusClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		AmadeusClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		AmadeusBaseURL:      getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),

		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),

		KafkaBrokers: getEnvList("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "tripcraft.events"),

		CORSOrigins: getEnvListDefault("CORS_ORIGINS", []string{"*"}),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	if c.BcryptCost < MinBcryptCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be at least %d, got %d", MinBcryptCost, c.BcryptCost))
	}
	switch c.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.DBDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN is required"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string) []string {
	return getEnvListDefault(key, nil)
}

func getEnvListDefault(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
