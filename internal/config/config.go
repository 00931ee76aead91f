package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	TokenExpiry time.Duration

	// Timezone is the single IANA zone all scheduling happens in.
	Timezone string

	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPPassword string

	VAPIDEmail      string
	VAPIDPublicKey  string
	VAPIDPrivateKey string

	OpenRouterAPIKey string
	OpenRouterModel  string
}

// LoadConfig reads .env (if present) and builds the Config with defaults.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	expiryHours := 168 // 7 days
	if v := os.Getenv("TOKEN_EXPIRY_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			expiryHours = parsed
		} else {
			logrus.WithError(err).Warn("Invalid TOKEN_EXPIRY_HOURS, using default")
		}
	}

	return &Config{
		Port:        getEnv("PORT", "5000"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "dreampath"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenExpiry: time.Duration(expiryHours) * time.Hour,

		Timezone: getEnv("TIMEZONE", "Asia/Kolkata"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPSender:   os.Getenv("SMTP_SENDER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		VAPIDEmail:      getEnv("VAPID_EMAIL", "mailto:admin@example.com"),
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),

		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:  getEnv("OPENROUTER_MODEL", "google/gemini-2.5-flash"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
