package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Drill    DrillConfig    `mapstructure:"drill"`
	SRS      SRSConfig      `mapstructure:"srs"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// DrillConfig tunes the drill engine itself.
type DrillConfig struct {
	// AccentLanguages lists the language codes eligible for the
	// accent-only error classification.
	AccentLanguages []string `mapstructure:"accent_languages"`
}

// SRSConfig overrides the spaced-repetition scheduling defaults. Zero
// values keep the built-in policy (10min retry; 1, 3, 7 day intervals;
// 14 day cap; +0.1/-0.2 score deltas).
type SRSConfig struct {
	IncorrectRetryMinutes int     `mapstructure:"incorrect_retry_minutes" validate:"gte=0"`
	FirstIntervalDays     int     `mapstructure:"first_interval_days"     validate:"gte=0"`
	SecondIntervalDays    int     `mapstructure:"second_interval_days"    validate:"gte=0"`
	ThirdIntervalDays     int     `mapstructure:"third_interval_days"     validate:"gte=0"`
	MaxIntervalDays       int     `mapstructure:"max_interval_days"       validate:"gte=0"`
	CorrectScoreDelta     float64 `mapstructure:"correct_score_delta"     validate:"gte=0,lte=1"`
	IncorrectScorePenalty float64 `mapstructure:"incorrect_score_penalty" validate:"gte=0,lte=1"`
}
