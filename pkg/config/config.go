package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSessionSecret is only accepted outside release mode.
const DefaultSessionSecret = "default-secret-key"

// ErrDefaultSecret is returned by Load when a release build would sign with DefaultSessionSecret.
var ErrDefaultSecret = errors.New("SESSION_SECRET and ACTIVATION_SECRET must be set in release mode")

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	GitHub     GitHubConfig
	Session    SessionConfig
	Activation ActivationConfig
	Mail       MailConfig
	Kafka      KafkaConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
	// BaseURL is used to build absolute links in outgoing emails.
	BaseURL string
}

type DatabaseConfig struct {
	Path string
}

type GitHubConfig struct {
	APIURL string
	Token  string
}

type SessionConfig struct {
	Secret string
}

type ActivationConfig struct {
	Secret string
	TTL    time.Duration
}

type MailConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	From              string
	FeedbackRecipient string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	sessionSecret := getEnv("SESSION_SECRET", DefaultSessionSecret)

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
			BaseURL:      strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./gitossum.db"),
		},
		GitHub: GitHubConfig{
			APIURL: getEnv("GITHUB_API_URL", ""),
			Token:  getEnv("GITHUB_TOKEN", ""),
		},
		Session: SessionConfig{
			Secret: sessionSecret,
		},
		Activation: ActivationConfig{
			Secret: getEnv("ACTIVATION_SECRET", sessionSecret),
			TTL:    time.Duration(getEnvAsInt("ACTIVATION_TTL_HOURS", 72)) * time.Hour,
		},
		Mail: MailConfig{
			Host:              getEnv("SMTP_HOST", ""),
			Port:              getEnvAsInt("SMTP_PORT", 587),
			Username:          getEnv("SMTP_USERNAME", ""),
			Password:          getEnv("SMTP_PASSWORD", ""),
			From:              getEnv("MAIL_FROM", "gitossum@gmail.com"),
			FeedbackRecipient: getEnv("FEEDBACK_EMAIL", "gitossum@gmail.com"),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvAsSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_MINING_TOPIC", "mining-requests"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Server.Mode == "release" &&
		(cfg.Session.Secret == DefaultSessionSecret || cfg.Activation.Secret == DefaultSessionSecret) {
		return nil, ErrDefaultSecret
	}
	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsSlice splits a comma separated variable, dropping empty items
func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
