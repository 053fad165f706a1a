package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "https://ifnbl.netlify.app", cfg.DataBaseURL)
	assert.Equal(t, "szn4", cfg.DefaultSeason)
	assert.Equal(t, []string{"szn3"}, cfg.PreviousSeasons)
	assert.Equal(t, 8, cfg.MaxWeeks)
	assert.Equal(t, 5, cfg.CircuitBreakerThreshold)
	assert.Contains(t, cfg.ExcludedPlayers, "Josiah")
	assert.Contains(t, cfg.ExcludedPlayers, "Imam Azfar Uddin")
	assert.Len(t, cfg.ExcludedPlayers, 11)
}

func TestConfigOverrides(t *testing.T) {
	t.Setenv("DEFAULT_SEASON", "szn5")
	t.Setenv("PREVIOUS_SEASONS", "szn4, szn3")
	t.Setenv("DATA_BASE_URL", "https://example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "szn5", cfg.DefaultSeason)
	assert.Equal(t, []string{"szn4", "szn3"}, cfg.PreviousSeasons)
	// trailing slash trimmed so path joins stay clean
	assert.Equal(t, "https://example.com", cfg.DataBaseURL)
}

func TestSeasons(t *testing.T) {
	cfg := &Config{DefaultSeason: "szn4", PreviousSeasons: []string{"szn3", "szn2"}}

	assert.Equal(t, []string{"szn4", "szn3", "szn2"}, cfg.Seasons())
	assert.True(t, cfg.KnowsSeason("szn4"))
	assert.True(t, cfg.KnowsSeason("szn2"))
	assert.False(t, cfg.KnowsSeason("szn9"))
}

func TestEnvPredicates(t *testing.T) {
	dev := &Config{Env: "development"}
	assert.True(t, dev.IsDevelopment())
	assert.False(t, dev.IsProduction())

	prod := &Config{Env: "production"}
	assert.True(t, prod.IsProduction())
	assert.False(t, prod.IsDevelopment())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b ,"))
}
