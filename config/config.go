package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		AccessSecret  string        `mapstructure:"access_secret"`
		AccessExpire  time.Duration `mapstructure:"access_expire"`
		RefreshSecret string        `mapstructure:"refresh_secret"`
		RefreshExpire time.Duration `mapstructure:"refresh_expire"`
	} `mapstructure:"jwt"`
	Cookie struct {
		Secure   bool   `mapstructure:"secure"`
		SameSite string `mapstructure:"same_site"`
		Path     string `mapstructure:"path"`
	} `mapstructure:"cookie"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	// Store TTLs and the refresh cookie max-age are derived from the expiry
	// windows, so they must never be zero.
	if AppConfig.JWT.AccessExpire <= 0 {
		AppConfig.JWT.AccessExpire = 24 * time.Hour
	}
	if AppConfig.JWT.RefreshExpire <= 0 {
		AppConfig.JWT.RefreshExpire = 7 * 24 * time.Hour
	}
}
