package app

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/aussiebroadwan/gatepass/pkg/jwtx"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseFile string `env:"GATEPASS_DATABASE_FILE" envDefault:"gatepass.db"`
	Port         int    `env:"GATEPASS_PORT"          envDefault:"8080"`
	CodePrefix   string `env:"GATEPASS_CODE_PREFIX"   envDefault:"ARD"`

	// SigningKey enables station tokens. Empty leaves the API open.
	SigningKey string `env:"GATEPASS_SIGNING_KEY"`
	Issuer     string `env:"GATEPASS_ISSUER"     envDefault:"gatepass"`

	// PublicURL prefixes the qrUrl returned on issuance, e.g.
	// "http://door.local:8080". Empty yields relative links.
	PublicURL string `env:"GATEPASS_PUBLIC_URL"`

	BackupSchedule string `env:"GATEPASS_BACKUP_SCHEDULE"` // cron spec, empty disables
	BackupDir      string `env:"GATEPASS_BACKUP_DIR"      envDefault:"backups"`
	BackupKeep     int    `env:"GATEPASS_BACKUP_KEEP"     envDefault:"24"`
	StatsSchedule  string `env:"GATEPASS_STATS_SCHEDULE"  envDefault:"@every 5m"`

	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	LogFile             string        `env:"LOG_FILE"` // rotated log file, empty logs to stdout only
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

var prefixPattern = regexp.MustCompile(`^[A-Za-z0-9]{0,16}$`)

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration and normalizes PublicURL.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("GATEPASS_DATABASE_FILE must not be empty"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("GATEPASS_PORT %d out of range", c.Port))
	}
	if !prefixPattern.MatchString(c.CodePrefix) {
		errs = append(errs, fmt.Errorf("GATEPASS_CODE_PREFIX %q must be up to 16 letters or digits", c.CodePrefix))
	}
	if c.SigningKey != "" && len(c.SigningKey) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("GATEPASS_SIGNING_KEY must be at least %d bytes", jwtx.MinSecretLength))
	}
	if c.PublicURL != "" {
		u, err := url.Parse(c.PublicURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("GATEPASS_PUBLIC_URL %q must be an absolute http(s) URL", c.PublicURL))
		}
		c.PublicURL = strings.TrimSuffix(c.PublicURL, "/")
	}
	if c.BackupSchedule != "" && c.BackupDir == "" {
		errs = append(errs, errors.New("GATEPASS_BACKUP_DIR is required when backups are scheduled"))
	}
	if c.ShutdownGracePeriod <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_GRACE_PERIOD must be positive"))
	}

	return errors.Join(errs...)
}

// AuthEnabled reports whether station tokens are required.
func (c Config) AuthEnabled() bool {
	return c.SigningKey != ""
}
