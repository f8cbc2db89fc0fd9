// Package config loads application configuration from environment
// variables, reading a .env file first when one exists.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. Required variables are enforced by
// must and mustInt; the rest fall back to defaults.
type Config struct {
	Env  string // dev, test, prod
	Port string // HTTP port for cmd/server

	DBDriver string // mysql (default) or postgres
	DBUser   string
	DBPass   string // empty allowed
	DBHost   string
	DBPort   string
	DBName   string

	JWTSecret  string
	BcryptCost int

	AMQPURL          string // empty disables publishing
	S3Bucket         string
	S3Region         string
	OTPEnforceExpiry bool

	LogLevel string
	LogFile  string // optional copy of every log entry

	RateLimit RateLimitConfig
}

// Load reads .env (if present) and the environment. Missing required
// values end the process.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "8080"),

		DBDriver: envStr("DB_DRIVER", "mysql"),
		DBUser:   must("DB_USER"),
		DBPass:   os.Getenv("DB_PASS"),
		DBHost:   must("DB_HOST"),
		DBPort:   strconv.Itoa(mustInt("DB_PORT")),
		DBName:   must("DB_NAME"),

		JWTSecret:  must("JWT_SECRET"),
		BcryptCost: envInt("BCRYPT_COST", 10),

		AMQPURL:          amqpURL(),
		S3Bucket:         envStr("S3_DATA_BUCKET", ""),
		S3Region:         envStr("S3_REGION", envStr("AWS_REGION", "ap-south-1")),
		OTPEnforceExpiry: envBool("OTP_ENFORCE_EXPIRY", false),

		LogLevel: envStr("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		RateLimit: LoadRateLimitConfig(),
	}
}

// WorkerConfig is the subset cmd/worker needs; it has no database.
type WorkerConfig struct {
	AMQPURL  string
	LogLevel string
	LogFile  string
}

func LoadWorker() WorkerConfig {
	_ = godotenv.Load()
	return WorkerConfig{
		AMQPURL:  amqpURL(),
		LogLevel: envStr("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
	}
}

// amqpURL accepts either RABBITMQ_URL or AMQP_URL.
func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves a required variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must for integers.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
