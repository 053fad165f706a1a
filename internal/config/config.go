package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Static data host serving the season JSON documents
	DataBaseURL string `mapstructure:"DATA_BASE_URL"`

	// Seasons
	DefaultSeason   string   `mapstructure:"DEFAULT_SEASON"`
	PreviousSeasons []string `mapstructure:"PREVIOUS_SEASONS"`
	MaxWeeks        int      `mapstructure:"MAX_WEEKS"`

	// Upstream fetch behavior
	FetchTimeout            time.Duration `mapstructure:"FETCH_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Guest / fill-in names never eligible for league-wide leaderboards
	ExcludedPlayers []string `mapstructure:"EXCLUDED_PLAYERS"`
}

// Names that appear in box scores but belong to fill-in players who were
// never rostered for a full season.
const defaultExcludedPlayers = "Josiah,Danial Asim,Salman,Ibrahim,Raedh Talha,Devon,Sufyan,Saif Rehman,Amaar Zafar,Luqman Ali,Imam Azfar Uddin"

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("DATA_BASE_URL", "https://ifnbl.netlify.app")
	viper.SetDefault("DEFAULT_SEASON", "szn4")
	viper.SetDefault("PREVIOUS_SEASONS", "szn3")
	viper.SetDefault("MAX_WEEKS", 8)
	viper.SetDefault("FETCH_TIMEOUT", "10s")
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("EXCLUDED_PLAYERS", defaultExcludedPlayers)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Comma-separated list values arrive as single strings from env vars
	config.CorsOrigins = splitList(viper.GetString("CORS_ORIGINS"))
	config.PreviousSeasons = splitList(viper.GetString("PREVIOUS_SEASONS"))
	config.ExcludedPlayers = splitList(viper.GetString("EXCLUDED_PLAYERS"))

	config.DataBaseURL = strings.TrimRight(config.DataBaseURL, "/")

	return &config, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Seasons returns every season this deployment knows about, current first.
func (c *Config) Seasons() []string {
	return append([]string{c.DefaultSeason}, c.PreviousSeasons...)
}

func (c *Config) KnowsSeason(season string) bool {
	for _, s := range c.Seasons() {
		if s == season {
			return true
		}
	}
	return false
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
