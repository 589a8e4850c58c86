package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cashflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, DriverSQLite, c.Database.Driver)
	assert.Equal(t, 3, c.Forecast.HorizonMonths)
	assert.Equal(t, 3, c.Forecast.OpportunityHorizonMonths)
	assert.Equal(t, 14, c.Forecast.CycleDays)
	assert.Equal(t, "@every 5m", c.Refresh.Schedule)

	reserve, err := c.ReserveAmount()
	require.NoError(t, err)
	assert.True(t, reserve.IsZero())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
forecast:
  horizon_months: 6
  reserve: "2500.50"
  timezone: America/New_York
  cycle_days: 14
  cycle_days_by_account:
    daily-shop: 1
refresh:
  schedule: "*/10 * * * *"
`)
	t.Setenv("CASHFLOW_SERVER_PORT", "7070")
	t.Setenv("CASHFLOW_FORECAST_EXCLUDE_TODAY", "true")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, c.Server.Port, "env overrides file")
	assert.Equal(t, 6, c.Forecast.HorizonMonths)
	assert.True(t, c.Forecast.ExcludeToday)
	assert.Equal(t, map[string]int{"daily-shop": 1}, c.Forecast.CycleDaysByAccount)
	assert.Equal(t, "*/10 * * * *", c.Refresh.Schedule)
	assert.Equal(t, "debug", c.Log.Level)

	reserve, err := c.ReserveAmount()
	require.NoError(t, err)
	assert.Equal(t, "2500.5", reserve.String())

	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"horizon too long", "forecast:\n  horizon_months: 13\n"},
		{"negative reserve", "forecast:\n  reserve: \"-1\"\n"},
		{"bad reserve", "forecast:\n  reserve: lots\n"},
		{"bad timezone", "forecast:\n  timezone: Mars/Olympus\n"},
		{"zero cycle", "forecast:\n  cycle_days: 0\n"},
		{"bad account cycle", "forecast:\n  cycle_days_by_account:\n    shop: 0\n"},
		{"unknown driver", "database:\n  driver: oracle\n"},
		{"postgres without dsn", "database:\n  driver: postgres\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
