package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbTYPE     string
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type RateLimit struct {
	Requests int
	Window   time.Duration
}

type Config struct {
	ServerPort    int
	ProjectName   string
	Env           string
	AppURL        string
	DB            DB
	SMTP          SMTP
	MinIO         MinIO
	RateLimit     RateLimit
	JWTSecretKey  string
	TokenDuration time.Duration
	MaxUploadSize int64
	LogLevel      string
	LogFormat     string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func LoadDB() DB {
	return DB{
		DbTYPE:     getEnv("DB_TYPE", "postgres"),
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASS", "password"),
		DbNAME:     getEnv("DB_NAME", "inkblog"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadSMTP() SMTP {
	return SMTP{
		Host:     getEnv("SMTP_HOST", "localhost"),
		Port:     getEnvAsInt("SMTP_PORT", 587),
		User:     getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASS", ""),
		From:     getEnv("PROJECT_EMAIL", "no-reply@localhost"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", ""),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "images"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:  getEnvAsInt("PORT", 3000),
		ProjectName: getEnv("PROJECT_NAME", "inkblog"),
		Env:         getEnv("APP_ENV", "development"),
		AppURL:      strings.TrimSuffix(getEnv("APP_URL", ""), "/"),
		DB:          LoadDB(),
		SMTP:        LoadSMTP(),
		MinIO:       LoadMinIO(),
		RateLimit: RateLimit{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Hour),
		},
		JWTSecretKey:  getEnv("JWT_SECRET", ""),
		TokenDuration: getEnvAsDuration("TOKEN_TTL", 72*time.Hour),
		MaxUploadSize: parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		ReadTimeout:   getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:  getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.DB.DbTYPE != "postgres" {
		return fmt.Errorf("unsupported DB_TYPE %q: only postgres is supported", c.DB.DbTYPE)
	}
	if c.RateLimit.Requests <= 0 {
		return errors.New("RATE_LIMIT_REQUESTS must be positive")
	}
	if c.AppURL == "" && !c.IsDevelopment() {
		return fmt.Errorf("APP_URL is required when APP_ENV is %q", c.Env)
	}
	return nil
}

// IsDevelopment reports a local environment, where emailed links may
// fall back to the request Host.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Env) {
	case "", "development", "dev", "local", "test":
		return true
	}
	return false
}

// ImagesEnabled is false when no object storage endpoint is configured.
func (c *Config) ImagesEnabled() bool {
	return c.MinIO.Endpoint != ""
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}
