// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = ".env"

// NewConfig loads configuration from the environment (and an optional .env
// file) using viper with typed defaults and validation.
func NewConfig() (*Config, error) {
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, v := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, v)
			}
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var defaults = map[string]any{
	"logging.level": "info",

	"server.host":             "0.0.0.0",
	"server.port":             8080,
	"server.shutdown_timeout": 5 * time.Second,

	"postgres.host":            "localhost",
	"postgres.port":            5432,
	"postgres.user":            "postgres",
	"postgres.password":        "postgres",
	"postgres.db_name":         "buoy",
	"postgres.ssl_mode":        "disable",
	"postgres.migrate_timeout": 10 * time.Second,
	"postgres.max_conns":       10,
	"postgres.min_conns":       2,

	"auth.secret": "",

	"notify.prefix": "buoy",

	"site.name":             "Buoy",
	"site.server_name":      "localhost",
	"site.admin_url":        "http://localhost/wp-admin/",
	"site.home_url":         "http://localhost/",
	"site.registration_url": "http://localhost/wp-login.php?action=register",

	"mail.driver":     "log",
	"mail.host":       "localhost",
	"mail.port":       25,
	"mail.user":       "",
	"mail.password":   "",
	"mail.from_local": "buoy",
}

func setDefaults(v *viper.Viper) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

func bindEnvs(v *viper.Viper) {
	for k := range defaults {
		_ = v.BindEnv(k)
	}
}
