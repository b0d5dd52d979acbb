package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"    validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
	Loan     LoanConfig     `mapstructure:"loan"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// RedisConfig contains connection settings for the Redis instance used to
// track revoked authentication tokens.
type RedisConfig struct {
	Address  string `mapstructure:"address" validate:"required,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=0,lte=31"`
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	WorkerCount           int `mapstructure:"worker_count"             validate:"required,gt=0"`
	QueueSize             int `mapstructure:"queue_size"               validate:"required,gt=0"`
	StuckTaskAgeMinutes   int `mapstructure:"stuck_task_age_minutes"   validate:"required,gt=0"`
	OverdueScanIntervalMinutes int `mapstructure:"overdue_scan_interval_minutes" validate:"required,gt=0"`
}

// LoanConfig contains lending policy settings.
type LoanConfig struct {
	// PeriodDays is how long a patron may keep a book before it is overdue.
	PeriodDays int `mapstructure:"period_days" validate:"required,gt=0"`

	// OverdueFine is the flat fine assessed when a loan passes its due date.
	OverdueFine int `mapstructure:"overdue_fine" validate:"gte=0"`
}
