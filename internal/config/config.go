package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// Store selects the room record backend: "redis" or "memory".
	Store         string `mapstructure:"store"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// RoomTTLSeconds bounds how long an idle room record survives.
	RoomTTLSeconds int `mapstructure:"room_ttl_seconds"`

	// PublicURL is the address baked into join QR codes.
	PublicURL string `mapstructure:"public_url"`
}

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

func InitConfig() *AppConfig {
	v := viper.New()

	v.SetConfigFile("app_config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("store", "memory")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("room_ttl_seconds", 24*60*60)
	v.SetDefault("public_url", "http://localhost:8080")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; defaults and env cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			panic(fmt.Errorf("failed to load config: %w", err))
		}
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("failed to parse config: %w", err))
	}

	return &config
}
