package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB        int    `mapstructure:"REDIS_AUTH_DB"`
	RedisEffectQueueDB int    `mapstructure:"REDIS_EFFECT_QUEUE_DB"`

	// Outbound email.
	AWSRegion   string `mapstructure:"AWS_REGION"`
	MailFrom    string `mapstructure:"MAIL_FROM"`
	ProgramName string `mapstructure:"PROGRAM_NAME"`

	// Payments.
	StripeKey          string `mapstructure:"STRIPE_KEY"`
	ProgramFeeCents    int64  `mapstructure:"PROGRAM_FEE_CENTS"`
	UDLProgramFeeCents int64  `mapstructure:"UDL_PROGRAM_FEE_CENTS"`
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
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_EFFECT_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "podium")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("MAIL_FROM", "noreply@podium.example.org")
	viper.SetDefault("PROGRAM_NAME", "Summer Debate Program")
	viper.SetDefault("PROGRAM_FEE_CENTS", 59900)
	viper.SetDefault("UDL_PROGRAM_FEE_CENTS", 29900)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
