package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultDatabaseURL    = "postgres://localhost:5432/apollo?sslmode=disable"
	defaultLocale         = "en"
	defaultMigrationsPath = "migrations"
)

type Config struct {
	Token          string
	DatabaseURL    string
	GuildID        string
	DefaultLocale  string
	LogLevel       slog.Level
	MigrationsPath string
	AutoMigrate    bool

	// Derived from DatabaseURL by validate.
	DatabaseDriver string
	SQLitePath     string
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function (os.Getenv in production).
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Token:          getenv("TOKEN"),
		DatabaseURL:    getenv("DATABASE_URL"),
		GuildID:        getenv("GUILD_ID"),
		DefaultLocale:  getenv("DEFAULT_LOCALE"),
		MigrationsPath: getenv("MIGRATIONS_PATH"),
		AutoMigrate:    true,
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(orDefault(getenv("LOG_LEVEL"), "info"))); err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL invalide: %w", err)
	}
	if raw := strings.TrimSpace(getenv("AUTO_MIGRATE")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("config: AUTO_MIGRATE invalide (%q): %w", raw, err)
		}
		cfg.AutoMigrate = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN est requis et ne peut pas être vide")
	}

	// GUILD_ID est optionnel : sans lui, la commande est enregistrée globalement.
	if c.GuildID != "" && !isSnowflake(c.GuildID) {
		return fmt.Errorf("config: GUILD_ID doit être un ID de serveur Discord (chiffres uniquement)")
	}

	c.DefaultLocale = orDefault(c.DefaultLocale, defaultLocale)
	c.MigrationsPath = orDefault(c.MigrationsPath, defaultMigrationsPath)

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Valeur par défaut utile en local lorsque DATABASE_URL n'est pas fournie.
		c.DatabaseURL = defaultDatabaseURL
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
	}
	switch parsed.Scheme {
	case "postgres", "postgresql":
		if parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): host manquant", c.DatabaseURL)
		}
		c.DatabaseDriver = DriverPostgres
	case "sqlite":
		// sqlite://apollo.db (relatif) ou sqlite:///var/lib/apollo/apollo.db (absolu)
		path := parsed.Host + parsed.Path
		if path == "" {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): chemin SQLite manquant", c.DatabaseURL)
		}
		c.DatabaseDriver = DriverSQLite
		c.SQLitePath = path
	default:
		return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme %q non supporté", c.DatabaseURL, parsed.Scheme)
	}

	return nil
}
