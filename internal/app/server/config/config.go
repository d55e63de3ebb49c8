package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress      = ":3000"
	defaultMigrations      = "migrations"
	defaultKeyAlgorithm    = "hmac-sha256"
	defaultShutdownTimeout = 10 * time.Second

	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	sqliteScheme = "sqlite://"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	APIKey APIKey
}

type DB struct {
	DatabaseURI string `mapstructure:"database_uri"`
	Migrations  string `mapstructure:"migrations_path"`
}

type Server struct {
	RunAddress      string        `mapstructure:"run_address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// APIKey describes the shared secret every entity route is gated on.
// Secret holds the expected hex digest, not the key itself.
type APIKey struct {
	Secret    string `mapstructure:"api_secret"`
	Salt      string `mapstructure:"api_key_salt"`
	Algorithm string `mapstructure:"api_key_algorithm"`
}

func init() {
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("migrations_path", defaultMigrations)
	viper.SetDefault("api_key_algorithm", defaultKeyAlgorithm)
	viper.SetDefault("shutdown_timeout", defaultShutdownTimeout)
}

// Load reads the optional .env file and then the process environment.
// Values bound to viper from command line flags win over both.
func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	} else {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	config := Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress:      viper.GetString("run_address"),
			ShutdownTimeout: viper.GetDuration("shutdown_timeout"),
		},
		APIKey: APIKey{
			Secret:    viper.GetString("api_secret"),
			Salt:      viper.GetString("api_key_salt"),
			Algorithm: viper.GetString("api_key_algorithm"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// MustLoad is Load for call sites that cannot continue without a config.
func MustLoad() *Config {
	config, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return config
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("app_env must be one of %s, %s, %s; got %q", EnvLocal, EnvDev, EnvProd, c.Env)
	}
	if c.Server.RunAddress == "" {
		return fmt.Errorf("run_address must not be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	if c.DB.Driver() == DriverSQLite && c.DB.SQLitePath() == "" {
		return fmt.Errorf("database_uri %q names no sqlite file", c.DB.DatabaseURI)
	}
	return nil
}

// InMemory reports whether no database was configured and the process
// should fall back to the in-memory store.
func (c *Config) InMemory() bool {
	return c.DB.Driver() == DriverMemory
}

// Driver picks the store from the shape of DatabaseURI: empty is the
// in-memory store, sqlite://path a SQLite file, anything else postgres.
func (d DB) Driver() string {
	switch {
	case d.DatabaseURI == "":
		return DriverMemory
	case strings.HasPrefix(d.DatabaseURI, sqliteScheme):
		return DriverSQLite
	default:
		return DriverPostgres
	}
}

// SQLitePath is the file part of a sqlite:// DatabaseURI.
func (d DB) SQLitePath() string {
	return strings.TrimPrefix(d.DatabaseURI, sqliteScheme)
}

func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}
