package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" switches gin to release mode

	// Storage Configuration
	DatabasePath string `mapstructure:"DATABASE_PATH"` // SQLite file, e.g., "data/sidehustle.db"

	// Builder Configuration
	PlanCacheSize int `mapstructure:"PLAN_CACHE_SIZE"` // Rendered replies kept in memory; 0 disables

	// Seed the featured Xeris listing on startup
	SeedFeatured bool `mapstructure:"SEED_FEATURED"`
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_PATH", "data/sidehustle.db")
	v.SetDefault("PLAN_CACHE_SIZE", 256)
	v.SetDefault("SEED_FEATURED", true)

	v.AutomaticEnv() // Read environment variables that match keys

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", v.ConfigFileUsed())
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.DatabasePath == "" {
		return Config{}, fmt.Errorf("DATABASE_PATH must not be empty")
	}
	if config.PlanCacheSize < 0 {
		log.Printf("WARN: PLAN_CACHE_SIZE=%d is negative, disabling the reply cache.", config.PlanCacheSize)
		config.PlanCacheSize = 0
	}

	return
}
