package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Raffle  RaffleConfig
	Janitor JanitorConfig
	Log     LogConfig

	// EnvFileLoaded reports whether a .env file was found. Load runs before
	// the logger is initialized, so the caller logs it.
	EnvFileLoaded bool `mapstructure:"-"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	Mode            string
	ShutdownTimeout time.Duration
}

// CORSConfig lists the origins allowed to call the API from a browser
type CORSConfig struct {
	AllowedOrigins []string
}

// RaffleConfig holds raffle engine settings. A zero Seed means a random seed
// is drawn at startup.
type RaffleConfig struct {
	Seed int64
}

// JanitorConfig controls the orphan sweep. A zero Interval disables it.
type JanitorConfig struct {
	Interval time.Duration
}

// LogConfig holds google/logger settings
type LogConfig struct {
	Verbose   bool
	SystemLog bool
	File      string
}

// Load reads configuration from an optional .env file, an optional
// config.yaml under path or path/config, and the environment, in
// increasing order of precedence.
func Load(path string) (*Config, error) {
	envLoaded := godotenv.Load() == nil

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(path + "/config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and environment apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.EnvFileLoaded = envLoaded
	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdowntimeout", 5*time.Second)
	v.SetDefault("cors.allowedorigins", []string{"http://localhost:3000"})
	v.SetDefault("raffle.seed", 0)
	v.SetDefault("janitor.interval", time.Duration(0))
	v.SetDefault("log.verbose", true)
	v.SetDefault("log.systemlog", false)
	v.SetDefault("log.file", "")
}
