package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

// Config returns the raw value of an environment variable after the .env file
// has been loaded.
func Config(key string) string {
	loadEnv.Do(func() {
		_ = godotenv.Load(".env")
	})
	return os.Getenv(key)
}

type Settings struct {
	Env      string
	Port     string
	LogLevel string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int

	BookingHoldTTL      time.Duration
	MaxSeatsPerBooking  int
	ExpiryInterval      time.Duration
	ReminderInterval    time.Duration
	ReminderLeadFrom    time.Duration
	ReminderLeadTo      time.Duration
	ShowtimeSweepCron   string
	CancellationCutoff  time.Duration
	ShowtimeCleanupTime time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RabbitURL string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	PaymentWebhookSecret string

	FrontendURL string
	CORSOrigins string
	Currency    string
}

func (s Settings) IsDev() bool {
	return s.Env == "" || s.Env == "dev" || s.Env == "development"
}

func (s Settings) SMTPEnabled() bool {
	return s.SMTPHost != ""
}

func (s Settings) CloudinaryEnabled() bool {
	return s.CloudinaryCloudName != "" && s.CloudinaryAPIKey != "" && s.CloudinaryAPISecret != ""
}

func Load() Settings {
	return Settings{
		Env:      str("APP_ENV", "dev"),
		Port:     str("APP_PORT", "8080"),
		LogLevel: str("LOG_LEVEL", "info"),

		DBHost:     str("DB_HOST", "localhost"),
		DBPort:     num("DB_PORT", 5432),
		DBUser:     str("DB_USER", "postgres"),
		DBPassword: Config("DB_PASSWORD"),
		DBName:     str("DB_NAME", "cinemaverse"),
		DBSSLMode:  str("DB_SSLMODE", "disable"),

		JWTSecret:  str("JWT_SECRET", "change-me"),
		AccessTTL:  dur("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTTL: dur("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		BcryptCost: num("BCRYPT_COST", 10),

		BookingHoldTTL:      dur("BOOKING_HOLD_TTL", 15*time.Minute),
		MaxSeatsPerBooking:  num("BOOKING_MAX_SEATS", 10),
		ExpiryInterval:      dur("BOOKING_EXPIRY_INTERVAL", time.Minute),
		ReminderInterval:    dur("REMINDER_INTERVAL", 15*time.Minute),
		ReminderLeadFrom:    dur("REMINDER_LEAD_FROM", time.Hour),
		ReminderLeadTo:      dur("REMINDER_LEAD_TO", 75*time.Minute),
		ShowtimeSweepCron:   str("SHOWTIME_SWEEP_CRON", "*/5 * * * *"),
		CancellationCutoff:  dur("CANCELLATION_CUTOFF", time.Hour),
		ShowtimeCleanupTime: dur("SHOWTIME_CLEANUP_TIME", 15*time.Minute),

		SMTPHost:     Config("SMTP_HOST"),
		SMTPPort:     num("SMTP_PORT", 587),
		SMTPUsername: Config("SMTP_USERNAME"),
		SMTPPassword: Config("SMTP_PASSWORD"),
		SMTPFrom:     str("SMTP_FROM", "CinemaVerse <no-reply@cinemaverse.local>"),

		RedisAddr:     Config("REDIS_ADDR"),
		RedisPassword: Config("REDIS_PASSWORD"),
		RedisDB:       num("REDIS_DB", 0),
		CacheTTL:      dur("CACHE_TTL", 5*time.Minute),

		RabbitURL: Config("RABBITMQ_URL"),

		CloudinaryCloudName: Config("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    Config("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: Config("CLOUDINARY_API_SECRET"),

		PaymentWebhookSecret: Config("PAYMENT_WEBHOOK_SECRET"),

		FrontendURL: strings.TrimRight(str("FRONTEND_URL", "http://localhost:5173"), "/"),
		CORSOrigins: str("CORS_ORIGINS", "http://localhost:5173"),
		Currency:    str("CURRENCY", "USD"),
	}
}

func str(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}

func num(key string, def int) int {
	v := Config(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func dur(key string, def time.Duration) time.Duration {
	v := Config(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
