package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Booking      BookingConfig
	Notification NotificationConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type BookingConfig struct {
	// RefCodeMaxAttempts bounds the reference code uniqueness loop.
	RefCodeMaxAttempts int
	// SweepSchedule is the cron expression for the completion sweep.
	SweepSchedule string
}

type NotificationConfig struct {
	Buffer int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REF_CODE_MAX_ATTEMPTS", 25)
	viper.SetDefault("SWEEP_SCHEDULE", "0 2 * * *")
	viper.SetDefault("NOTIFICATION_BUFFER", 64)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Booking: BookingConfig{
			RefCodeMaxAttempts: viper.GetInt("REF_CODE_MAX_ATTEMPTS"),
			SweepSchedule:      viper.GetString("SWEEP_SCHEDULE"),
		},
		Notification: NotificationConfig{
			Buffer: viper.GetInt("NOTIFICATION_BUFFER"),
		},
	}

	return config, nil
}
