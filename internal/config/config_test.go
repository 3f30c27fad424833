package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		MongoDB: MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "resto"},
		Auth:    AuthConfig{JWTSecret: "secret"},
		AI:      AIConfig{GeminiKey: "key", GeminiModel: "gemini-2.0-flash"},
		Reporting: ReportingConfig{
			CronSchedule:     "0 23 * * *",
			Timezone:         "Africa/Conakry",
			ExpiryWindowDays: 1,
		},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }},
		{name: "missing mongo uri", mutate: func(c *Config) { c.MongoDB.URI = "" }},
		{name: "missing db name", mutate: func(c *Config) { c.MongoDB.DBName = "" }},
		{name: "missing jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }},
		{name: "gemini key without model", mutate: func(c *Config) { c.AI.GeminiModel = "" }},
		{name: "missing cron schedule", mutate: func(c *Config) { c.Reporting.CronSchedule = "" }},
		{name: "missing timezone", mutate: func(c *Config) { c.Reporting.Timezone = "" }},
		{name: "zero expiry window", mutate: func(c *Config) { c.Reporting.ExpiryWindowDays = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateSheetsHalvesMustBeSetTogether(t *testing.T) {
	cfg := validConfig()
	cfg.Sheets.CredentialsPath = "/etc/creds.json"
	assert.Error(t, cfg.Validate())

	cfg.Sheets.SpreadsheetID = "sheet-id"
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.SheetsEnabled())
}

func TestSheetsDisabledByDefault(t *testing.T) {
	assert.False(t, validConfig().SheetsEnabled())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DB_NAME", "")
	t.Setenv("SUGGESTION_EXPIRY_WINDOW_DAYS", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "resto", cfg.MongoDB.DBName)
	assert.Equal(t, 1, cfg.Reporting.ExpiryWindowDays)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.GeminiModel)
}

func TestLoadRejectsBadWindow(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SUGGESTION_EXPIRY_WINDOW_DAYS", "soon")

	_, err := Load("")
	assert.Error(t, err)
}
