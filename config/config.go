package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type (
	APP struct {
		Name      string
		Host      string
		Port      string
		Env       string
		JWTSecret string
		TokenTTL  time.Duration
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Storage struct {
		UploadDir      string
		MaxUploadBytes int64
		EmailDir       string
	}
	Moderation struct {
		Mode          string // ModerationDisabled | ModerationEnabled | ModerationRequired
		ClassifierURL string
		Threshold     float64
	}
	Mirror struct {
		CloudName string
		APIKey    string
		APISecret string
		Folder    string
		Workers   int
		Timeout   time.Duration
	}

	Config struct {
		App        APP
		DB         DB
		Redis      Redis
		MQ         MQ
		Storage    Storage
		Moderation Moderation
		Mirror     Mirror
	}
)

// Moderation modes. "required" turns an unavailable detector chain into an
// upload failure instead of a permissive pass.
const (
	ModerationDisabled = "disabled"
	ModerationEnabled  = "enabled"
	ModerationRequired = "required"
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func Load() Config {
	app := APP{
		Name:      getEnv("SERVICE_NAME", "shareledger"),
		Host:      getEnv("SERVICE_HOST", ""),
		Port:      getEnv("SERVICE_PORT", "8080"),
		Env:       getEnv("SERVICE_ENV", ""),
		JWTSecret: getEnv("SERVICE_JWT_SECRET", ""),
		TokenTTL:  time.Duration(getEnvInt64("SERVICE_TOKEN_TTL_MINUTES", 60)) * time.Minute,
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	rd := Redis{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       int(getEnvInt64("REDIS_DB", 0)),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "shareledger.events"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "shareledger.notifications"),
	}
	st := Storage{
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_SIZE_BYTES", 52428800),
		EmailDir:       getEnv("EMAIL_LOG_DIR", "./logs/emails"),
	}
	md := Moderation{
		Mode:          getEnv("NSFW_DETECTOR", ModerationDisabled),
		ClassifierURL: getEnv("NSFW_CLASSIFIER_URL", ""),
		Threshold:     getEnvFloat("NSFW_THRESHOLD", 0.7),
	}
	mr := Mirror{
		CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		Folder:    getEnv("CLOUDINARY_UPLOAD_FOLDER", "shareledger"),
		Workers:   int(getEnvInt64("MIRROR_WORKERS", 4)),
		Timeout:   time.Duration(getEnvInt64("MIRROR_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	return Config{
		App:        app,
		DB:         db,
		Redis:      rd,
		MQ:         mq,
		Storage:    st,
		Moderation: md,
		Mirror:     mr,
	}
}

// Configured reports whether mirror credentials are present. Their absence is
// a valid configuration meaning local-only storage.
func (m Mirror) Configured() bool {
	return m.CloudName != "" && m.APIKey != "" && m.APISecret != ""
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
