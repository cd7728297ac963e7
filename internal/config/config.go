package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	Server      ServerConfig   `mapstructure:"server"`
	Analysis    AnalysisConfig `mapstructure:"analysis"`
	History     HistoryConfig  `mapstructure:"history"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AnalysisConfig bounds the HTTP surface of the detection engine. The engine
// itself terminates in bounded steps regardless; these limits keep request
// payloads and prediction loops within service limits.
type AnalysisConfig struct {
	MaxSequenceLength int `mapstructure:"max_sequence_length"`
	MaxPredictions    int `mapstructure:"max_predictions"`
}

type HistoryConfig struct {
	MaxEntries  int `mapstructure:"max_entries"`
	TrendWindow int `mapstructure:"trend_window"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Normalize environment to lowercase for consistent comparison
	config.Environment = strings.ToLower(config.Environment)

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return nil, fmt.Errorf("server port must be between 1 and 65535, got %d", config.Server.Port)
	}
	if config.Analysis.MaxSequenceLength < 2 {
		return nil, fmt.Errorf("analysis max_sequence_length must be at least 2, got %d", config.Analysis.MaxSequenceLength)
	}
	if config.Analysis.MaxPredictions < 1 {
		return nil, fmt.Errorf("analysis max_predictions must be at least 1, got %d", config.Analysis.MaxPredictions)
	}
	if config.History.MaxEntries < 1 {
		return nil, fmt.Errorf("history max_entries must be at least 1, got %d", config.History.MaxEntries)
	}
	if config.History.TrendWindow < 1 {
		return nil, fmt.Errorf("history trend_window must be at least 1, got %d", config.History.TrendWindow)
	}

	return &config, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Analysis
	viper.SetDefault("analysis.max_sequence_length", 1000)
	viper.SetDefault("analysis.max_predictions", 100)

	// History
	viper.SetDefault("history.max_entries", 500)
	viper.SetDefault("history.trend_window", 10)
}
