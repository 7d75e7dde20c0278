package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
		SecureCookies      bool     `mapstructure:"secure_cookies"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
		MaxConns int32  `mapstructure:"max_conns"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Redis struct {
		Enabled  bool   `mapstructure:"enabled"`
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	SMTP struct {
		Host           string `mapstructure:"host"`
		Port           int    `mapstructure:"port"`
		Username       string `mapstructure:"username"`
		Password       string `mapstructure:"password"`
		From           string `mapstructure:"from"`
		FromName       string `mapstructure:"from_name"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"smtp"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	// Rates are the per-session babysitter earnings in Shs.
	Rates struct {
		HalfDay float64 `mapstructure:"half_day"`
		FullDay float64 `mapstructure:"full_day"`
	} `mapstructure:"rates"`

	// Budgets maps an expense category to its budget threshold in Shs.
	Budgets map[string]float64 `mapstructure:"budgets"`

	Reports struct {
		S3 struct {
			Enabled   bool   `mapstructure:"enabled"`
			Endpoint  string `mapstructure:"endpoint"`
			Region    string `mapstructure:"region"`
			Bucket    string `mapstructure:"bucket"`
			AccessKey string `mapstructure:"access_key"`
			SecretKey string `mapstructure:"secret_key"`
		} `mapstructure:"s3"`
	} `mapstructure:"reports"`
}

// Load reads configs/config.yaml (optional), .env and the environment.
func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath())

	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 3337)
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("jwt.expiration_hours", 720)
	v.SetDefault("jwt.issuer", "daycare-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "daycare_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from_name", "Daystar Daycare")
	v.SetDefault("smtp.timeout_seconds", 15)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("rates.half_day", 2000)
	v.SetDefault("rates.full_day", 5000)
	v.SetDefault("budgets", map[string]float64{
		"salaries":    2000000,
		"toys":        200000,
		"maintenance": 500000,
		"utilities":   500000,
	})

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	applyEnvOverrides(&cfg)
	normalizeBudgets(&cfg)

	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		log.Fatal("JWT_SECRET not found in environment or config file")
	}

	return &cfg
}

func configPath() string {
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		return p
	}
	return "configs/config.yaml"
}

// applyEnvOverrides lets deployment variables win over the yaml file.
func applyEnvOverrides(cfg *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.SMTP.Host = host
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.SMTP.Port = n
		}
	}
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		cfg.SMTP.Username = user
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		cfg.SMTP.Password = pass
	}
	if from := os.Getenv("SMTP_FROM"); from != "" {
		cfg.SMTP.From = from
	}

	if key := os.Getenv("REPORTS_S3_ACCESS_KEY"); key != "" {
		cfg.Reports.S3.AccessKey = key
	}
	if secret := os.Getenv("REPORTS_S3_SECRET_KEY"); secret != "" {
		cfg.Reports.S3.SecretKey = secret
	}
}

// normalizeBudgets lower-cases category keys; viper keeps the case of keys
// that come from typed defaults.
func normalizeBudgets(cfg *Config) {
	budgets := make(map[string]float64, len(cfg.Budgets))
	for category, amount := range cfg.Budgets {
		budgets[strings.ToLower(strings.TrimSpace(category))] = amount
	}
	cfg.Budgets = budgets
}

// SessionRate returns the configured earning for a canonical session type.
func (c *Config) SessionRate(sessionType string) float64 {
	switch sessionType {
	case "half-day":
		return c.Rates.HalfDay
	case "full-day":
		return c.Rates.FullDay
	}
	return 0
}

// Budget returns the threshold for an expense category, ignoring case.
func (c *Config) Budget(category string) float64 {
	return c.Budgets[strings.ToLower(strings.TrimSpace(category))]
}

// DSN builds the pgx connection string.
func (c *Config) DSN() string {
	return "postgres://" + c.Database.User + ":" + c.Database.Password + "@" +
		c.Database.Host + ":" + strconv.Itoa(c.Database.Port) + "/" + c.Database.Name +
		"?sslmode=" + c.Database.SSLMode
}
