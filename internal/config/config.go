package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level vitalwatch configuration.
type Config struct {
	ExportDir string    `mapstructure:"export_dir"`
	Retrieval Retrieval `mapstructure:"retrieval"`
	Forecast  Forecast  `mapstructure:"forecast"`
	Assistant Assistant `mapstructure:"assistant"`
	Watch     Watch     `mapstructure:"watch"`
	Output    Output    `mapstructure:"output"`
}

// Retrieval tunes knowledge-base retrieval.
type Retrieval struct {
	MaxResults  int `mapstructure:"max_results"`
	SummaryCap  int `mapstructure:"summary_cap"`
	HistoryDays int `mapstructure:"history_days"`
}

// Forecast tunes the prediction engine.
type Forecast struct {
	SaveHistory  bool `mapstructure:"save_history"`
	HistoryLimit int  `mapstructure:"history_limit"`
	ShowWithheld bool `mapstructure:"show_withheld"`
}

// Assistant configures the LLM provider used by the ask command.
type Assistant struct {
	Provider  string `mapstructure:"provider"` // "anthropic" or "openai"
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// Watch configures the export-directory watcher.
type Watch struct {
	IntervalSeconds int  `mapstructure:"interval_seconds"`
	Notify          bool `mapstructure:"notify"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("export_dir", DefaultExportDir)
	v.SetDefault("retrieval.max_results", DefaultRetrieval.MaxResults)
	v.SetDefault("retrieval.summary_cap", DefaultRetrieval.SummaryCap)
	v.SetDefault("retrieval.history_days", DefaultRetrieval.HistoryDays)
	v.SetDefault("forecast.save_history", DefaultForecast.SaveHistory)
	v.SetDefault("forecast.history_limit", DefaultForecast.HistoryLimit)
	v.SetDefault("forecast.show_withheld", DefaultForecast.ShowWithheld)
	v.SetDefault("assistant.provider", DefaultAssistant.Provider)
	v.SetDefault("assistant.model", DefaultAssistant.Model)
	v.SetDefault("assistant.max_tokens", DefaultAssistant.MaxTokens)
	v.SetDefault("watch.interval_seconds", DefaultWatch.IntervalSeconds)
	v.SetDefault("watch.notify", DefaultWatch.Notify)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ExportDir = expandPath(cfg.ExportDir)

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
