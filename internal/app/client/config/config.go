package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:3000"
	defaultEnv           = "local"
	defaultConfigDir     = ".timetrack"
	defaultTimeout       = 30 * time.Second
)

type Config struct {
	Env           string
	ServerAddress string
	APIKey        string
	EnableTLS     bool
	Timeout       time.Duration
	ConfigDir     string
	SessionPath   string
}

// Load reads .env from the working directory or its parent, then the
// environment. The session file lives under CONFIG_DIR, by default
// ~/.timetrack.
func Load() (*Config, error) {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("ENABLE_TLS", false)
	viper.SetDefault("CLIENT_TIMEOUT", defaultTimeout)

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	config := &Config{
		Env:           viper.GetString("APP_ENV"),
		ServerAddress: viper.GetString("SERVER_ADDRESS"),
		APIKey:        viper.GetString("API_KEY"),
		EnableTLS:     viper.GetBool("ENABLE_TLS"),
		Timeout:       viper.GetDuration("CLIENT_TIMEOUT"),
		ConfigDir:     configDir,
		SessionPath:   filepath.Join(configDir, "session"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("client_timeout must be positive")
	}
	return nil
}

// BaseURL is the server root including the scheme.
func (c *Config) BaseURL() string {
	if c.EnableTLS {
		return "https://" + c.ServerAddress
	}
	return "http://" + c.ServerAddress
}
