package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml file in the working directory. Environment variables use the
// LIBRA_ prefix with underscores separating groups (e.g. LIBRA_SERVER_PORT,
// LIBRA_DATABASE_URL) and take precedence over file values.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults keep a local dev setup working with only DATABASE_URL and
	// JWT secret provided.
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080) // 7 days
	v.SetDefault("auth.bcrypt_cost", 0)                        // 0 selects bcrypt.DefaultCost
	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.stuck_task_age_minutes", 30)
	v.SetDefault("task.overdue_scan_interval_minutes", 60)
	v.SetDefault("loan.period_days", 14)
	v.SetDefault("loan.overdue_fine", 400)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LIBRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so keys
	// without defaults must be bound explicitly.
	for _, key := range []string{"database.url", "auth.jwt_secret", "redis.password"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; everything can come from the
		// environment. Any other read error is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
