package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	JWTSecret     string
	JWTExpiry     time.Duration
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	MinioHost     string
	MinioPort     string
	MinioUsername string
	MinioPassword string
	BucketName    string
	UploadFolder  string

	RabbitMQURL      string
	RabbitMQPrefetch int

	LinkTokenLength   int
	TicketTokenLength int
	TicketTTL         time.Duration
	TicketGrace       time.Duration
	PresignExpiry     time.Duration

	AuditWorkerConcurrency int
	AuditRate              float64
	AuditBurst             int

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	MaxUploadBytes int64
	BulkUploadMax  int
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// InitConfig loads configuration from the environment.
func InitConfig() {
	rabbitHost := getEnv("RABBITMQ_HOST", "localhost")
	rabbitPort := getEnv("RABBITMQ_PORT", "5672")
	rabbitUser := getEnv("RABBITMQ_USER", "guest")
	rabbitPass := getEnv("RABBITMQ_PASSWORD", "guest")
	rabbitVhost := getEnv("RABBITMQ_VHOST", "/")
	rabbitURL := getEnv("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = fmt.Sprintf(
			"amqp://%s:%s@%s:%s/%s",
			url.PathEscape(rabbitUser),
			url.PathEscape(rabbitPass),
			rabbitHost,
			rabbitPort,
			url.PathEscape(rabbitVhost),
		)
	}

	AppConfig = Config{
		JWTSecret:     getEnv("JWT_SECRET", "l=ax+b"),
		JWTExpiry:     getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "root"),
		DBPass:        getEnv("DB_PASS", "root"),
		DBName:        getEnv("DB_NAME", "CloudVault"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MinioHost:     getEnv("MINIO_HOST", "localhost"),
		MinioPort:     getEnv("MINIO_PORT", "9000"),
		MinioUsername: getEnv("MINIO_USERNAME", "minioadmin"),
		MinioPassword: getEnv("MINIO_PASSWORD", "minioadmin"),
		BucketName:    getEnv("BUCKET_NAME", "cloudvault"),
		UploadFolder:  getEnv("UPLOAD_FOLDER", "drive"),

		RabbitMQURL:      rabbitURL,
		RabbitMQPrefetch: getEnvInt("RABBITMQ_PREFETCH", 8),

		LinkTokenLength:   getEnvInt("LINK_TOKEN_LENGTH", 32),
		TicketTokenLength: getEnvInt("TICKET_TOKEN_LENGTH", 40),
		TicketTTL:         getEnvDuration("TICKET_TTL", 5*time.Minute),
		TicketGrace:       getEnvDuration("TICKET_GRACE", time.Hour),
		PresignExpiry:     getEnvDuration("PRESIGN_EXPIRY", 10*time.Minute),

		AuditWorkerConcurrency: getEnvInt("AUDIT_WORKER_CONCURRENCY", 4),
		AuditRate:              getEnvFloat("AUDIT_RATE", 50),
		AuditBurst:             getEnvInt("AUDIT_BURST", 100),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnv("SMTP_PORT", ""),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		SMTPFrom: getEnv("SMTP_FROM", ""),

		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 100*1024*1024),
		BulkUploadMax:  getEnvInt("BULK_UPLOAD_MAX", 10),
	}
}
