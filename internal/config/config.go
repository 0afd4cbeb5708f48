package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`   // Telegram API token loaded from environment
	DB               DB        `mapstructure:"database"`
	HTTP             HTTP      `mapstructure:"http"`
	Auth             Auth      `mapstructure:"auth"`
	Quiz             Quiz      `mapstructure:"quiz"`
	Cache            Cache     `mapstructure:"cache"`
	AMQP             AMQP      `mapstructure:"amqp"`
	Reminders        Reminders `mapstructure:"reminders"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
	AutoMigrate     bool          `mapstructure:"auto_migrate"`      // apply schema migrations on startup
}

// HTTP configures the REST API server.
type HTTP struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// Auth holds the secret used to verify access tokens issued by the identity provider.
type Auth struct {
	Secret string `mapstructure:"-"`
}

// Quiz holds quiz defaults used by the bot.
type Quiz struct {
	DefaultWordCount int    `mapstructure:"default_word_count"`
	MaxWordCount     int    `mapstructure:"max_word_count"`
	DefaultMode      string `mapstructure:"default_mode"`
	RandomSeed       uint64 `mapstructure:"random_seed"` // 0 seeds from the clock
}

// Cache sizes the completed-result cache.
type Cache struct {
	MaxKeys int64 `mapstructure:"max_keys"`
	MaxCost int64 `mapstructure:"max_cost"`
}

// AMQP configures publishing of quiz events. Publishing is disabled when URL is empty.
type AMQP struct {
	URL   string `mapstructure:"-"`
	Queue string `mapstructure:"queue"`
}

// Reminders configures unfinished-quiz reminders sent by the bot.
type Reminders struct {
	Enabled  bool          `mapstructure:"enabled"`
	Schedule string        `mapstructure:"schedule"`
	StaleAge time.Duration `mapstructure:"stale_age"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Variables already present in the environment take precedence over .env.
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("http.listen_addr", ":8080")
	v.SetDefault("http.read_timeout", "30s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("quiz.default_word_count", 10)
	v.SetDefault("quiz.max_word_count", 50)
	v.SetDefault("quiz.default_mode", "mixed")
	v.SetDefault("quiz.random_seed", 0)
	v.SetDefault("cache.max_keys", 10000)
	v.SetDefault("cache.max_cost", 10000)
	v.SetDefault("amqp.queue", "quiz.completed")
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 * * * *")
	v.SetDefault("reminders.stale_age", "24h")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("auth_secret", "AUTH_SECRET")
	_ = v.BindEnv("amqp_url", "AMQP_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.Auth.Secret = v.GetString("auth_secret")
	cfg.AMQP.URL = v.GetString("amqp_url")

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
