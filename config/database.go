package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"finledger"`
	Password string `env:"PASSWORD"                envDefault:"finledger"`
	Name     string `env:"NAME"                    envDefault:"finledger"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration. Redis is optional; when URI is
// empty the login throttle is disabled and nothing connects.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// ThrottleConfig contains login throttle configuration.
type ThrottleConfig struct {
	// MaxAttempts is the number of failed logins tolerated per email
	// within the window before further attempts are rejected.
	MaxAttempts int `env:"MAX_ATTEMPTS" envDefault:"10"`

	// AttemptWindow is the TTL of the per-email failure counter.
	AttemptWindow time.Duration `env:"ATTEMPT_WINDOW" envDefault:"15m"`
}

// Sanitize applies guardrails to throttle configuration values.
func (t *ThrottleConfig) Sanitize() {
	if t.MaxAttempts <= 0 {
		t.MaxAttempts = 10
	}
	if t.AttemptWindow <= 0 {
		t.AttemptWindow = 15 * time.Minute
	}
}
