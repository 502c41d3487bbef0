package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Escalation scheduler. The staleness threshold is deployment config:
	// minutes in development, 24h in production.
	EscalationIntervalSeconds int `mapstructure:"ESCALATION_INTERVAL_SECONDS"`
	RequestStalenessMinutes   int `mapstructure:"REQUEST_STALENESS_MINUTES"`

	// Firebase service account for push delivery.
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("ESCALATION_INTERVAL_SECONDS", 60)
	viper.SetDefault("REQUEST_STALENESS_MINUTES", 2)
	viper.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "serviceAccountKey.json")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	// ENV may come from the config file, so the environment-dependent default
	// is chosen only after the file has been read. An explicit
	// REQUEST_STALENESS_MINUTES value still wins over either default.
	if viper.GetString("ENV") == "production" {
		viper.SetDefault("REQUEST_STALENESS_MINUTES", 24*60)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// EscalationInterval returns the scheduler tick period.
func EscalationInterval() time.Duration {
	return time.Duration(AppConfig.EscalationIntervalSeconds) * time.Second
}

// RequestStaleness returns how long an assigned pending request may sit
// unanswered before it is fanned out.
func RequestStaleness() time.Duration {
	return time.Duration(AppConfig.RequestStalenessMinutes) * time.Minute
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
