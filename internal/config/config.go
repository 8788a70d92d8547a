package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	AppName     string
	Port        string
	CORSOrigins string
	PageSize    int

	Database DatabaseConfig
	JWT      JWTConfig
	Reorder  ReorderConfig
	Log      LogConfig

	// PhoneRegion is the default region used to parse supplier and customer phones.
	PhoneRegion string
}

type DatabaseConfig struct {
	Driver   string // postgres, mysql or sqlite
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	TimeZone string
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type ReorderConfig struct {
	Threshold int
	Excess    int
}

type LogConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "Inventory Billing v1.0")
	v.SetDefault("PORT", "3000")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("JWT_SECRET", "your-super-secret-key-change-in-production")
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("REORDER_THRESHOLD", 5)
	v.SetDefault("REORDER_EXCESS", 5)
	v.SetDefault("PHONE_REGION", "IN")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, reading process environment only")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:     v.GetString("APP_NAME"),
		Port:        v.GetString("PORT"),
		CORSOrigins: v.GetString("CORS_ORIGINS"),
		PageSize:    v.GetInt("PAGE_SIZE"),
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("JWT_SECRET"),
			ExpirationHours: v.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Reorder: ReorderConfig{
			Threshold: nonNegative(v, "REORDER_THRESHOLD"),
			Excess:    nonNegative(v, "REORDER_EXCESS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		PhoneRegion: strings.ToUpper(v.GetString("PHONE_REGION")),
	}
}

// nonNegative reads an int setting, clamping values below zero to zero.
func nonNegative(v *viper.Viper, key string) int {
	n := v.GetInt(key)
	if n < 0 {
		logrus.WithField("key", key).Warnf("config: %d is negative, using 0", n)
		return 0
	}
	return n
}
