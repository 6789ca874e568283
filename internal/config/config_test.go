package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "buoy", cfg.Notify.Prefix)
	assert.Equal(t, MailDriverLog, cfg.Mail.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddr())
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=buoy sslmode=disable", cfg.Postgres.DSN())
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NOTIFY_PREFIX", "lifeline")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SITE_SERVER_NAME", "www.example.org")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "lifeline", cfg.Notify.Prefix)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "www.example.org", cfg.Site.ServerName)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080},
			Postgres: PostgresConfig{Host: "db", User: "u", DBName: "buoy"},
			Notify:   NotifyConfig{Prefix: "buoy"},
			Site: SiteConfig{
				AdminURL:        "https://example.org/wp-admin/",
				HomeURL:         "https://example.org/",
				RegistrationURL: "https://example.org/register",
			},
			Mail: MailConfig{Driver: MailDriverLog},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "missing prefix", mutate: func(c *Config) { c.Notify.Prefix = "" }, wantErr: true},
		{name: "bad admin url", mutate: func(c *Config) { c.Site.AdminURL = "not a url" }, wantErr: true},
		{name: "smtp without host", mutate: func(c *Config) { c.Mail = MailConfig{Driver: MailDriverSMTP} }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Mail.Driver = "pigeon" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
