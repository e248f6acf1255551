package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newViper(env map[string]string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range env {
		v.Set(k, val)
	}
	return v
}

func TestDefaults(t *testing.T) {
	cfg := fromViper(newViper(nil))

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://localhost:4001", cfg.Services.AuthURL)
	assert.Equal(t, DriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 2, cfg.Search.MinLength)
	assert.True(t, cfg.ShowErrorDetail)
	assert.True(t, cfg.EnableDocs)
}

func TestProductionHidesErrorDetail(t *testing.T) {
	cfg := fromViper(newViper(map[string]string{"ENV": EnvProduction}))

	assert.False(t, cfg.ShowErrorDetail)
	assert.False(t, cfg.EnableDocs)
}

func TestExplicitErrorDetailWins(t *testing.T) {
	cfg := fromViper(newViper(map[string]string{"ENV": EnvProduction, "SHOW_ERROR_DETAIL": "true"}))

	assert.True(t, cfg.ShowErrorDetail)
}

func TestServiceURLsTrimmed(t *testing.T) {
	cfg := fromViper(newViper(map[string]string{"USER_SERVICE_URL": "https://users.example.com/"}))

	assert.Equal(t, "https://users.example.com", cfg.Services.UserURL)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	cfg := fromViper(newViper(map[string]string{"CACHE_TTL": "soon"}))

	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a, ,b "))
	assert.Nil(t, splitAndTrim(""))
}

func TestSessionPurgeInterval(t *testing.T) {
	assert.Equal(t, time.Hour, fromViper(newViper(nil)).Session.PurgeInterval)

	cfg := fromViper(newViper(map[string]string{"SESSION_PURGE_INTERVAL": "15m"}))
	assert.Equal(t, 15*time.Minute, cfg.Session.PurgeInterval)
}
