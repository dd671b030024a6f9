package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Webhook  WebhookConfig
	Bot      BotConfig
	Gateway  GatewayConfig
	Console  ConsoleConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	IntakeTopic        string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	OperatorTo string
}

// WebhookConfig holds the two notification sink URLs. Either may be empty, in
// which case events routed there are dropped.
type WebhookConfig struct {
	AlertURL   string
	MetricsURL string
}

type BotConfig struct {
	SequenceFilePath string
	DocumentPath     string
	SessionTTLHours  int
	SessionStore     string // "memory" or "redis"
}

// GatewayConfig points at the WhatsApp gateway sidecar. With an empty URL the
// bot logs outbound messages instead of delivering them.
type GatewayConfig struct {
	URL   string
	Token string
}

type ConsoleConfig struct {
	Username     string
	PasswordHash string
	JWTSecret    string
	TokenTTL     int // hours
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			IntakeTopic:        getEnv("INBOUND_MESSAGE_TOPIC_NAME", "INBOUND_MESSAGES"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "aurora"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			OperatorTo: getEnv("SMTP_OPERATOR_TO", ""),
		},
		Webhook: WebhookConfig{
			AlertURL:   getEnv("DISCORD_WEBHOOK_URL", ""),
			MetricsURL: getEnv("DISCORD_METRICS_WEBHOOK_URL", ""),
		},
		Bot: BotConfig{
			SequenceFilePath: getEnv("PROTOCOL_SEQUENCE_FILE", "ultimo_protocolo.txt"),
			DocumentPath:     getEnv("RCA_DOCUMENT_PATH", "RCA.pdf"),
			SessionTTLHours:  getEnvAsInt("SESSION_TTL_HOURS", 1),
			SessionStore:     getEnv("SESSION_STORE", "memory"),
		},
		Gateway: GatewayConfig{
			URL:   getEnv("GATEWAY_URL", ""),
			Token: getEnv("GATEWAY_TOKEN", ""),
		},
		Console: ConsoleConfig{
			Username:     getEnv("CONSOLE_USERNAME", ""),
			PasswordHash: getEnv("CONSOLE_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TokenTTL:     getEnvAsInt("CONSOLE_TOKEN_TTL_HOURS", 8),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
