package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"backoffice/internal/store"
)

const (
	AuthHeader = "header"
	AuthJWT    = "jwt"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	StorageMode string `env:"STORAGE_MODE" envDefault:"file"`
	// Stateless deployments cannot keep files between requests; it forces memory.
	Stateless bool   `env:"STATELESS"`
	DataDir   string `env:"DATA_DIR" envDefault:"./data"`
	DBDSN     string `env:"DB_DSN" envDefault:"backoffice.db"`

	Seed              bool   `env:"SEED_SAMPLE_DATA" envDefault:"true"`
	SeedRandom        uint64 `env:"SEED_RANDOM"`
	SeedAdminName     string `env:"SEED_ADMIN_NAME" envDefault:"Admin User"`
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@example.com"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:"Admin123!"`
	SeedUserPassword  string `env:"SEED_USER_PASSWORD" envDefault:"Passw0rd!"`

	LogFile  string `env:"LOG_FILE"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	AuthMode   string        `env:"AUTH_MODE" envDefault:"header"`
	JWTSecret  string        `env:"JWT_SECRET"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"12h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	MailFrom     string `env:"MAIL_FROM" envDefault:"no-reply@backoffice.local"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	NotifyWorkers int `env:"NOTIFY_WORKERS" envDefault:"2"`
	NotifyQueue   int `env:"NOTIFY_QUEUE" envDefault:"64"`

	LoginRateLimit int `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	BodyLimit      int `env:"BODY_LIMIT" envDefault:"1048576"`
}

// Load reads the configuration from the environment and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.check(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Summary is the loggable view of the configuration, without secrets.
func (c Config) Summary() map[string]any {
	return map[string]any{
		"port":      c.Port,
		"storage":   string(c.Storage().Mode),
		"data_dir":  c.DataDir,
		"seed":      c.Seed,
		"auth_mode": c.AuthMode,
		"smtp":      c.SMTPHost != "",
		"log_file":  c.LogFile,
	}
}

func (c Config) check() error {
	switch store.Mode(c.StorageMode) {
	case store.ModeFile, store.ModeMemory, store.ModeSQLite:
	default:
		return fmt.Errorf("STORAGE_MODE %q: want file, memory or sqlite", c.StorageMode)
	}
	switch c.AuthMode {
	case AuthHeader:
	case AuthJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("AUTH_MODE=jwt needs JWT_SECRET")
		}
	default:
		return fmt.Errorf("AUTH_MODE %q: want header or jwt", c.AuthMode)
	}
	if c.NotifyWorkers < 1 || c.NotifyQueue < 1 {
		return fmt.Errorf("NOTIFY_WORKERS and NOTIFY_QUEUE must be positive")
	}
	return nil
}

// Storage picks the backend variant. It is the only place the mode is decided.
func (c Config) Storage() store.Options {
	mode := store.Mode(c.StorageMode)
	if c.Stateless {
		mode = store.ModeMemory
	}
	return store.Options{Mode: mode, DataDir: c.DataDir, DSN: c.DBDSN}
}
