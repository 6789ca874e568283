package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Site     SiteConfig     `mapstructure:"site"`
	Mail     MailConfig     `mapstructure:"mail"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	if c.Postgres.Host == "" || c.Postgres.User == "" || c.Postgres.DBName == "" {
		return errors.New("postgres host, user and db_name are required")
	}
	if c.Notify.Prefix == "" {
		return errors.New("notify.prefix is required")
	}
	for key, raw := range map[string]string{
		"site.admin_url":        c.Site.AdminURL,
		"site.home_url":         c.Site.HomeURL,
		"site.registration_url": c.Site.RegistrationURL,
	} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("%s is not a valid url: %w", key, err)
		}
	}
	switch c.Mail.Driver {
	case MailDriverSMTP:
		if c.Mail.Host == "" || c.Mail.Port == 0 {
			return errors.New("mail.host and mail.port are required for the smtp driver")
		}
	case MailDriverLog:
	default:
		return fmt.Errorf("unknown mail.driver %q", c.Mail.Driver)
	}
	return nil
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PostgresConfig describes database connection parameters.
type PostgresConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	DBName         string        `mapstructure:"db_name"`
	SSLMode        string        `mapstructure:"ssl_mode"`
	MigrateTimeout time.Duration `mapstructure:"migrate_timeout"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
}

// DSN returns a Postgres connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

type AuthConfig struct {
	Secret string `mapstructure:"secret"`
}

// NotifyConfig namespaces the persisted queue key and the link parameters.
type NotifyConfig struct {
	Prefix string `mapstructure:"prefix"`
}

// SiteConfig describes the public site the notifications link back to.
type SiteConfig struct {
	Name            string `mapstructure:"name"`
	ServerName      string `mapstructure:"server_name"`
	AdminURL        string `mapstructure:"admin_url"`
	HomeURL         string `mapstructure:"home_url"`
	RegistrationURL string `mapstructure:"registration_url"`
}

const (
	MailDriverSMTP = "smtp"
	MailDriverLog  = "log"
)

type MailConfig struct {
	Driver    string `mapstructure:"driver"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	FromLocal string `mapstructure:"from_local"`
}
